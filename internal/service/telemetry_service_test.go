package service

import (
	"errors"
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
)

func recordEvents(t *testing.T, svc *TelemetryService, eventType string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := svc.RecordEvent(1, TelemetryEventRequest{EventType: eventType, Stage: "assessment"}); err != nil {
			t.Fatalf("record %s: %v", eventType, err)
		}
	}
}

func TestRecordEventAppendsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewTelemetryService(repository.NewTelemetryRepository(db))

	first, err := svc.RecordEvent(7, TelemetryEventRequest{EventType: model.EventStarted})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	second, err := svc.RecordEvent(7, TelemetryEventRequest{EventType: model.EventStarted})
	if err != nil {
		t.Fatalf("record again: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatal("events should be assigned ids")
	}
	if first.ID == second.ID {
		t.Fatal("identical events must create distinct rows")
	}

	var count int64
	db.Model(&model.TelemetryEvent{}).Count(&count)
	if count != 2 {
		t.Fatalf("row count = %d, want 2", count)
	}
}

func TestRecordEventRequiresType(t *testing.T) {
	db := newTestDB(t)
	svc := NewTelemetryService(repository.NewTelemetryRepository(db))

	if _, err := svc.RecordEvent(1, TelemetryEventRequest{}); !errors.Is(err, util.ErrEventTypeRequired) {
		t.Fatalf("err = %v, want ErrEventTypeRequired", err)
	}
}

func TestSummarizeFunnel(t *testing.T) {
	db := newTestDB(t)
	svc := NewTelemetryService(repository.NewTelemetryRepository(db))

	recordEvents(t, svc, model.EventReadyViewed, 4)
	recordEvents(t, svc, model.EventStarted, 3)
	recordEvents(t, svc, model.EventCompleted, 1)
	recordEvents(t, svc, model.EventExitPromptOpened, 2)
	recordEvents(t, svc, model.EventExitConfirmed, 1)

	summary, err := svc.Summarize(10)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if summary.TotalEvents != 11 {
		t.Fatalf("total = %d, want 11", summary.TotalEvents)
	}

	f := summary.Funnel
	if f.ReadyViews != 4 || f.Starts != 3 || f.Completions != 1 {
		t.Fatalf("funnel counts = %+v", f)
	}
	if f.StartRateFromReady == nil || *f.StartRateFromReady != 75 {
		t.Fatalf("start rate = %v, want 75", f.StartRateFromReady)
	}
	if f.CompletionRateFromStart == nil || *f.CompletionRateFromStart != 33.33 {
		t.Fatalf("completion rate = %v, want 33.33", f.CompletionRateFromStart)
	}
	if f.ExitConfirmRate == nil || *f.ExitConfirmRate != 50 {
		t.Fatalf("exit confirm rate = %v, want 50", f.ExitConfirmRate)
	}

	if len(summary.TopEvents) == 0 || summary.TopEvents[0].Key != model.EventReadyViewed {
		t.Fatalf("top events = %+v, want %q first", summary.TopEvents, model.EventReadyViewed)
	}
}

func TestSummarizeNilRatesOnEmptyLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewTelemetryService(repository.NewTelemetryRepository(db))

	summary, err := svc.Summarize(0)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.TotalEvents != 0 {
		t.Fatalf("total = %d, want 0", summary.TotalEvents)
	}
	f := summary.Funnel
	if f.StartRateFromReady != nil || f.CompletionRateFromStart != nil || f.ExitConfirmRate != nil {
		t.Fatalf("rates should be nil with zero denominators, got %+v", f)
	}
}

func TestSummarizeTopNLimit(t *testing.T) {
	db := newTestDB(t)
	svc := NewTelemetryService(repository.NewTelemetryRepository(db))

	recordEvents(t, svc, model.EventReadyViewed, 3)
	recordEvents(t, svc, model.EventStarted, 2)
	recordEvents(t, svc, model.EventFailed, 1)

	summary, err := svc.Summarize(2)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(summary.TopEvents) != 2 {
		t.Fatalf("top events = %d entries, want 2", len(summary.TopEvents))
	}
}
