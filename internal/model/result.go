package model

// Result is the single authoritative score for (profile, assessment, level).
// Resubmitting the same level during the same pass updates the row in place.
// swagger:model Result
type Result struct {
	BaseModel
	ProfileID    uint    `gorm:"not null;uniqueIndex:idx_profile_assessment_level" json:"profileId"`
	AssessmentID uint    `gorm:"not null;uniqueIndex:idx_profile_assessment_level" json:"assessmentId"`
	Level        Level   `gorm:"size:1;not null;uniqueIndex:idx_profile_assessment_level" json:"level"`
	Score        float64 `json:"score"`
	Passed       bool    `json:"passed"`
}

func (Result) TableName() string {
	return "results"
}

// Feedback carries the remedial message attached to a failing result.
// swagger:model Feedback
type Feedback struct {
	BaseModel
	ResultID       uint   `gorm:"uniqueIndex;not null" json:"resultId"`
	Recommendation string `gorm:"type:text;not null" json:"recommendation"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
