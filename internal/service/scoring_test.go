package service

import (
	"testing"

	"skillcheck_backend/internal/model"
)

func answered(correct bool) model.AssessmentResponse {
	choiceID := uint(1)
	return model.AssessmentResponse{SelectedChoiceID: &choiceID, IsCorrect: &correct}
}

func TestScoreResponses(t *testing.T) {
	tests := []struct {
		name      string
		responses []model.AssessmentResponse
		wantScore float64
		wantPass  bool
	}{
		{
			name:      "three of five passes at the boundary",
			responses: []model.AssessmentResponse{answered(true), answered(true), answered(true), answered(false), answered(false)},
			wantScore: 60,
			wantPass:  true,
		},
		{
			name:      "one of four fails",
			responses: []model.AssessmentResponse{answered(true), answered(false), answered(false), answered(false)},
			wantScore: 25,
			wantPass:  false,
		},
		{
			name:      "all correct",
			responses: []model.AssessmentResponse{answered(true), answered(true)},
			wantScore: 100,
			wantPass:  true,
		},
		{
			name:      "repeating decimal is rounded to two places",
			responses: []model.AssessmentResponse{answered(true), answered(false), answered(false)},
			wantScore: 33.33,
			wantPass:  false,
		},
		{
			name:      "two of three rounds up",
			responses: []model.AssessmentResponse{answered(true), answered(true), answered(false)},
			wantScore: 66.67,
			wantPass:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ScoreResponses(tt.responses)
			if !ok {
				t.Fatal("expected a scoreable response set")
			}
			if score.Score != tt.wantScore {
				t.Fatalf("score = %v, want %v", score.Score, tt.wantScore)
			}
			if score.Passed != tt.wantPass {
				t.Fatalf("passed = %v, want %v", score.Passed, tt.wantPass)
			}
		})
	}
}

func TestScoreResponsesIgnoresUnanswered(t *testing.T) {
	// Placeholder rows with no selected choice must not dilute the score.
	responses := []model.AssessmentResponse{
		answered(true),
		{},
		{},
	}

	score, ok := ScoreResponses(responses)
	if !ok {
		t.Fatal("expected a scoreable response set")
	}
	if score.Total != 1 || score.Score != 100 {
		t.Fatalf("got total=%d score=%v, want total=1 score=100", score.Total, score.Score)
	}
}

func TestScoreResponsesNothingAnswered(t *testing.T) {
	if _, ok := ScoreResponses([]model.AssessmentResponse{{}, {}}); ok {
		t.Fatal("expected ok=false when nothing was answered")
	}
	if _, ok := ScoreResponses(nil); ok {
		t.Fatal("expected ok=false for an empty set")
	}
}

func TestFeedbackForLevel(t *testing.T) {
	for _, l := range model.AllLevels() {
		if FeedbackForLevel(l) == "" {
			t.Fatalf("no feedback for level %q", l)
		}
	}
	if got := FeedbackForLevel(model.Level("9")); got != "Please improve." {
		t.Fatalf("fallback feedback = %q", got)
	}
}
