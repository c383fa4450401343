package model

import "time"

// Assessment tracks one pass of a profile through the leveled question bank.
// Once CompletedAt is set the assessment is terminal: no responses are
// accepted and the level never changes again.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	ProfileID    uint       `gorm:"index;not null" json:"profileId"`
	CurrentLevel Level      `gorm:"size:1;not null;default:'1'" json:"currentLevel"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}

func (Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) Completed() bool {
	return a.CompletedAt != nil
}

// AssessmentResponse holds the learner's answer to one question within one
// assessment. Rows are pre-created as placeholders when a level opens, so
// recording an answer is always an update of the unique
// (assessment, question) row.
// swagger:model AssessmentResponse
type AssessmentResponse struct {
	BaseModel
	AssessmentID     uint       `gorm:"not null;uniqueIndex:idx_assessment_question" json:"assessmentId"`
	QuestionID       uint       `gorm:"not null;uniqueIndex:idx_assessment_question" json:"questionId"`
	ProfileID        uint       `gorm:"index;not null" json:"profileId"`
	SelectedChoiceID *uint      `json:"selectedChoiceId"`
	TextResponse     string     `gorm:"type:text" json:"textResponse"`
	IsCorrect        *bool      `json:"isCorrect"`
	SubmittedAt      *time.Time `json:"submittedAt"`
}

func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}
