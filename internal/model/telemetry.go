package model

import "gorm.io/datatypes"

// Event types emitted by the assessment UI. The sink accepts any non-empty
// type; these constants exist for the summary funnel.
const (
	EventReadyViewed      = "assessment_ready_viewed"
	EventStarted          = "assessment_started"
	EventCompleted        = "assessment_completed"
	EventFailed           = "assessment_failed"
	EventLevelSubmitted   = "assessment_level_submitted"
	EventLevelTimeout     = "assessment_level_timeout"
	EventExitPromptOpened = "assessment_exit_prompt_opened"
	EventExitConfirmed    = "assessment_exit_confirmed"
	EventExitCanceled     = "assessment_exit_canceled"
)

// TelemetryEvent is an append-only UX signal. Rows are never updated or
// deleted, and their lifecycle is independent of the assessment they mention.
// swagger:model TelemetryEvent
type TelemetryEvent struct {
	UUIDBase
	UserID       uint           `gorm:"index;not null" json:"userId"`
	EventType    string         `gorm:"size:100;not null;index" json:"eventType"`
	Stage        string         `gorm:"size:30" json:"stage"`
	Level        string         `gorm:"size:10" json:"level"`
	AssessmentID *uint          `json:"assessmentId"`
	TimeLeft     *int           `json:"timeLeft"`
	Details      datatypes.JSON `gorm:"type:json" json:"details"`
}

func (TelemetryEvent) TableName() string {
	return "telemetry_events"
}
