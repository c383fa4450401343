package service

import (
	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/monitoring"

	"gorm.io/datatypes"
)

type TelemetryService struct {
	Repo *repository.TelemetryRepository
}

func NewTelemetryService(repo *repository.TelemetryRepository) *TelemetryService {
	return &TelemetryService{Repo: repo}
}

type TelemetryEventRequest struct {
	EventType    string         `json:"event_type" binding:"required"`
	Stage        string         `json:"stage"`
	Level        string         `json:"level"`
	AssessmentID *uint          `json:"assessment_id"`
	TimeLeft     *int           `json:"time_left"`
	Details      datatypes.JSON `json:"details"`
}

// RecordEvent appends one UX signal. Events are never deduplicated or
// updated; every call inserts a new row.
func (s *TelemetryService) RecordEvent(userID uint, req TelemetryEventRequest) (*model.TelemetryEvent, error) {
	if req.EventType == "" {
		return nil, util.ErrEventTypeRequired
	}

	event := &model.TelemetryEvent{
		UserID:       userID,
		EventType:    req.EventType,
		Stage:        req.Stage,
		Level:        req.Level,
		AssessmentID: req.AssessmentID,
		TimeLeft:     req.TimeLeft,
		Details:      req.Details,
	}
	if err := s.Repo.Create(event); err != nil {
		return nil, err
	}

	monitoring.TelemetryEvents.WithLabelValues(req.EventType).Inc()
	return event, nil
}

// FunnelSummary holds the stage-to-stage conversion rates. A rate is nil
// whenever its denominator is zero.
type FunnelSummary struct {
	ReadyViews              int64    `json:"ready_views"`
	Starts                  int64    `json:"starts"`
	Completions             int64    `json:"completions"`
	ExitPromptsOpened       int64    `json:"exit_prompts_opened"`
	ExitsConfirmed          int64    `json:"exits_confirmed"`
	StartRateFromReady      *float64 `json:"start_rate_from_ready"`
	CompletionRateFromStart *float64 `json:"completion_rate_from_start"`
	ExitConfirmRate         *float64 `json:"exit_confirm_rate"`
}

type TelemetrySummary struct {
	TotalEvents int64                    `json:"total_events"`
	ByEventType []repository.CountBucket `json:"by_event_type"`
	ByStage     []repository.CountBucket `json:"by_stage"`
	ByLevel     []repository.CountBucket `json:"by_level"`
	TopEvents   []repository.CountBucket `json:"top_events"`
	Funnel      FunnelSummary            `json:"funnel"`
}

// Summarize aggregates the event log into counts, a top-N ranking and the
// assessment funnel.
func (s *TelemetryService) Summarize(topN int) (*TelemetrySummary, error) {
	if topN <= 0 {
		topN = 10
	}

	summary := &TelemetrySummary{}
	var err error

	if summary.TotalEvents, err = s.Repo.Total(); err != nil {
		return nil, err
	}
	if summary.ByEventType, err = s.Repo.CountsBy("event_type"); err != nil {
		return nil, err
	}
	if summary.ByStage, err = s.Repo.CountsBy("stage"); err != nil {
		return nil, err
	}
	if summary.ByLevel, err = s.Repo.CountsBy("level"); err != nil {
		return nil, err
	}
	if summary.TopEvents, err = s.Repo.TopEventTypes(topN); err != nil {
		return nil, err
	}

	funnel := FunnelSummary{}
	if funnel.ReadyViews, err = s.Repo.CountForType(model.EventReadyViewed); err != nil {
		return nil, err
	}
	if funnel.Starts, err = s.Repo.CountForType(model.EventStarted); err != nil {
		return nil, err
	}
	if funnel.Completions, err = s.Repo.CountForType(model.EventCompleted); err != nil {
		return nil, err
	}
	if funnel.ExitPromptsOpened, err = s.Repo.CountForType(model.EventExitPromptOpened); err != nil {
		return nil, err
	}
	if funnel.ExitsConfirmed, err = s.Repo.CountForType(model.EventExitConfirmed); err != nil {
		return nil, err
	}

	funnel.StartRateFromReady = ratio(funnel.Starts, funnel.ReadyViews)
	funnel.CompletionRateFromStart = ratio(funnel.Completions, funnel.Starts)
	funnel.ExitConfirmRate = ratio(funnel.ExitsConfirmed, funnel.ExitPromptsOpened)

	summary.Funnel = funnel
	return summary, nil
}

// ratio returns numerator/denominator as a percentage rounded to two
// decimals, or nil when the denominator is not positive.
func ratio(numerator, denominator int64) *float64 {
	if denominator <= 0 {
		return nil
	}
	r := roundTo2(float64(numerator) / float64(denominator) * 100)
	return &r
}
