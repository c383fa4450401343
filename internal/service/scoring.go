package service

import (
	"math"

	"skillcheck_backend/internal/model"
)

// PassThreshold is the inclusive pass mark for every level.
const PassThreshold = 60.0

// LevelScore is the outcome of scoring one level's response set.
type LevelScore struct {
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
	Score   float64 `json:"score"`
	Passed  bool    `json:"passed"`
}

// ScoreResponses computes the score for one level's responses. Only responses
// with a selected choice count towards the total; open-ended and unanswered
// rows are ignored. ok is false when nothing was answered, which callers
// treat as nothing-to-score.
func ScoreResponses(responses []model.AssessmentResponse) (LevelScore, bool) {
	total := 0
	correct := 0
	for _, resp := range responses {
		if resp.SelectedChoiceID == nil {
			continue
		}
		total++
		if resp.IsCorrect != nil && *resp.IsCorrect {
			correct++
		}
	}

	if total == 0 {
		return LevelScore{}, false
	}

	score := roundTo2(float64(correct) / float64(total) * 100)
	return LevelScore{
		Total:   total,
		Correct: correct,
		Score:   score,
		Passed:  score >= PassThreshold,
	}, true
}

func roundTo2(x float64) float64 {
	return math.Round(x*100) / 100
}

// feedbackByLevel is the canned remediation attached to a failing result.
var feedbackByLevel = map[model.Level]string{
	model.Level1: "Improve your communication and patient interaction.",
	model.Level2: "Focus on collaboration and delivering consistent care.",
	model.Level3: "Review ethical protocols and decision-making best practices.",
}

// FeedbackForLevel returns the remediation text for a failed level.
func FeedbackForLevel(level model.Level) string {
	if text, ok := feedbackByLevel[level]; ok {
		return text
	}
	return "Please improve."
}
