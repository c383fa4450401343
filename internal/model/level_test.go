package model

import "testing"

func TestLevelNext(t *testing.T) {
	tests := []struct {
		level  Level
		next   Level
		hasNxt bool
	}{
		{Level1, Level2, true},
		{Level2, Level3, true},
		{Level3, "", false},
		{Level("9"), "", false},
	}

	for _, tt := range tests {
		next, ok := tt.level.Next()
		if ok != tt.hasNxt || next != tt.next {
			t.Fatalf("Next(%q) = (%q, %v), want (%q, %v)", tt.level, next, ok, tt.next, tt.hasNxt)
		}
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range AllLevels() {
		if !l.Valid() {
			t.Fatalf("expected %q to be valid", l)
		}
	}
	if Level("0").Valid() || Level("4").Valid() || Level("").Valid() {
		t.Fatal("expected out-of-range codes to be invalid")
	}
}

func TestLevelLabels(t *testing.T) {
	for _, l := range AllLevels() {
		if l.Label() == "" {
			t.Fatalf("level %q has no label", l)
		}
	}
}
