package service

import (
	"errors"
	"time"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/logger"
	"skillcheck_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	QuestionRepo   *repository.QuestionRepository
	ResultRepo     *repository.ResultRepository
	UserRepo       *repository.UserRepository
	DB             *gorm.DB
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ResultRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		QuestionRepo:   questionRepo,
		ResultRepo:     resultRepo,
		UserRepo:       userRepo,
		DB:             db,
	}
}

// StartAssessment opens a new pass at level 1 for the user's profile and
// pre-creates a placeholder response for every level-1 question. Only one
// in-progress assessment is allowed per profile.
func (s *AssessmentService) StartAssessment(userID uint) (*model.Assessment, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	if _, err := s.AssessmentRepo.FindActiveByProfile(profile.ID); err == nil {
		return nil, util.ErrAssessmentActive
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByLevel(nil, model.Level1)
	if err != nil {
		return nil, err
	}

	assessment := &model.Assessment{
		ProfileID:    profile.ID,
		CurrentLevel: model.Level1,
		StartedAt:    time.Now(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assessment).Error; err != nil {
			return err
		}
		return s.AssessmentRepo.CreatePlaceholders(tx, assessment.ID, profile.ID, questions)
	})
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentStarts.Inc()
	return assessment, nil
}

type RecordResponseRequest struct {
	AssessmentID     uint   `json:"assessment" binding:"required"`
	ProfileID        uint   `json:"profile" binding:"required"`
	QuestionID       uint   `json:"question" binding:"required"`
	SelectedChoiceID *uint  `json:"selected_choice"`
	TextResponse     string `json:"text_response"`
}

// RecordResponse validates the referenced rows and upserts the learner's
// answer. Correctness is derived from the chosen option; scoring itself is
// deferred to SubmitLevel.
func (s *AssessmentService) RecordResponse(req RecordResponseRequest) (*model.AssessmentResponse, error) {
	assessment, err := s.AssessmentRepo.FindByID(req.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if assessment.Completed() {
		return nil, util.ErrAssessmentComplete
	}

	if _, err := s.UserRepo.FindProfileByID(req.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	if _, err := s.QuestionRepo.FindByID(req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	resp := &model.AssessmentResponse{
		AssessmentID: req.AssessmentID,
		QuestionID:   req.QuestionID,
		ProfileID:    req.ProfileID,
		TextResponse: req.TextResponse,
	}

	if req.SelectedChoiceID != nil {
		choice, err := s.QuestionRepo.FindChoice(*req.SelectedChoiceID)
		if err != nil || choice.QuestionID != req.QuestionID {
			return nil, util.ErrChoiceMismatch
		}
		correct := choice.IsCorrect
		resp.SelectedChoiceID = &choice.ID
		resp.IsCorrect = &correct
	}

	now := time.Now()
	resp.SubmittedAt = &now

	if err := s.AssessmentRepo.UpsertResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// LevelOutcome is what SubmitLevel reports back to the learner.
type LevelOutcome struct {
	Message   string       `json:"message"`
	Level     model.Level  `json:"level"`
	Score     float64      `json:"score"`
	Passed    bool         `json:"passed"`
	NextLevel *model.Level `json:"next_level"`
	Completed bool         `json:"completed"`
	Feedback  string       `json:"feedback,omitempty"`
}

// SubmitLevel scores the assessment's current level and applies the
// progression policy: advance on a pass below level 3, complete on a level-3
// pass, terminate permanently on any failure. Submitting an already completed
// assessment is an idempotent no-op.
func (s *AssessmentService) SubmitLevel(assessmentID uint, actingUserID uint) (*LevelOutcome, error) {
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	profile, err := s.UserRepo.FindProfileByID(assessment.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != actingUserID {
		return nil, util.ErrNotOwner
	}

	if assessment.Completed() {
		return &LevelOutcome{
			Message:   "Assessment already completed.",
			Level:     assessment.CurrentLevel,
			Completed: true,
		}, nil
	}

	level := assessment.CurrentLevel
	responses, err := s.AssessmentRepo.ListResponsesByLevel(assessmentID, level)
	if err != nil {
		return nil, err
	}

	score, ok := ScoreResponses(responses)
	if !ok {
		return nil, util.ErrNoResponses
	}

	outcome := &LevelOutcome{
		Level:  level,
		Score:  score.Score,
		Passed: score.Passed,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result := &model.Result{
			ProfileID:    profile.ID,
			AssessmentID: assessmentID,
			Level:        level,
			Score:        score.Score,
			Passed:       score.Passed,
		}
		if err := s.ResultRepo.Upsert(tx, result); err != nil {
			return err
		}

		if !score.Passed {
			text := FeedbackForLevel(level)
			if _, err := s.ResultRepo.AttachFeedback(tx, result.ID, text); err != nil {
				return err
			}
			outcome.Feedback = text
			outcome.Completed = true
			outcome.Message = "Level failed. Assessment terminated."
			return s.AssessmentRepo.Complete(tx, assessmentID, time.Now())
		}

		next, hasNext := level.Next()
		if !hasNext {
			outcome.Completed = true
			outcome.Message = "Assessment completed. All levels passed."
			return s.AssessmentRepo.Complete(tx, assessmentID, time.Now())
		}

		questions, err := s.QuestionRepo.ListByLevel(tx, next)
		if err != nil {
			return err
		}
		if err := s.AssessmentRepo.CreatePlaceholders(tx, assessmentID, profile.ID, questions); err != nil {
			return err
		}
		if err := s.AssessmentRepo.AdvanceLevel(tx, assessmentID, next); err != nil {
			return err
		}
		outcome.NextLevel = &next
		outcome.Message = "Level passed. Advanced to next level."
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.LevelSubmissions.WithLabelValues(string(level), passLabel(score.Passed)).Inc()
	logger.Log.Info("level scored",
		zap.Uint("assessmentId", assessmentID),
		zap.String("level", string(level)),
		zap.Float64("score", score.Score),
		zap.Bool("passed", score.Passed),
	)
	return outcome, nil
}

func passLabel(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

// LevelResult is one row of the results view.
type LevelResult struct {
	Level    model.Level `json:"level"`
	Score    float64     `json:"score"`
	Passed   bool        `json:"passed"`
	Date     time.Time   `json:"date"`
	Feedback string      `json:"feedback,omitempty"`
}

// LatestResults returns the per-level results of the user's most recent
// assessment, with remediation text attached to failed levels.
func (s *AssessmentService) LatestResults(userID uint) ([]LevelResult, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	assessments, err := s.AssessmentRepo.ListByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return []LevelResult{}, nil
	}

	return s.resultsForAssessment(assessments[0].ID)
}

func (s *AssessmentService) resultsForAssessment(assessmentID uint) ([]LevelResult, error) {
	results, err := s.ResultRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	out := make([]LevelResult, 0, len(results))
	for _, res := range results {
		row := LevelResult{
			Level:  res.Level,
			Score:  res.Score,
			Passed: res.Passed,
			Date:   res.UpdatedAt,
		}
		if !res.Passed {
			if fb, err := s.ResultRepo.FindFeedback(res.ID); err == nil {
				row.Feedback = fb.Recommendation
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// QuestionReview is one answered question in the history view.
type QuestionReview struct {
	QuestionID   uint        `json:"questionId"`
	Level        model.Level `json:"level"`
	Answered     bool        `json:"answered"`
	IsCorrect    *bool       `json:"isCorrect"`
	TextResponse string      `json:"textResponse,omitempty"`
}

// AssessmentHistory is one past or current assessment pass.
type AssessmentHistory struct {
	AssessmentID   uint             `json:"assessment_id"`
	StartedAt      time.Time        `json:"started_at"`
	CompletedAt    *time.Time       `json:"completed_at"`
	CurrentLevel   model.Level      `json:"current_level"`
	LevelResults   []LevelResult    `json:"level_results"`
	QuestionReview []QuestionReview `json:"question_review"`
}

// History returns every assessment the user's profile has run, newest first,
// each with its level results and a per-question review.
func (s *AssessmentService) History(userID uint) ([]AssessmentHistory, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	assessments, err := s.AssessmentRepo.ListByProfile(profile.ID)
	if err != nil {
		return nil, err
	}

	history := make([]AssessmentHistory, 0, len(assessments))
	for _, a := range assessments {
		entry := AssessmentHistory{
			AssessmentID: a.ID,
			StartedAt:    a.StartedAt,
			CompletedAt:  a.CompletedAt,
			CurrentLevel: a.CurrentLevel,
		}

		if entry.LevelResults, err = s.resultsForAssessment(a.ID); err != nil {
			return nil, err
		}

		responses, err := s.AssessmentRepo.ListResponses(a.ID)
		if err != nil {
			return nil, err
		}
		questionIDs := make([]uint, len(responses))
		for i, resp := range responses {
			questionIDs[i] = resp.QuestionID
		}
		levels, err := s.QuestionRepo.LevelsByID(questionIDs)
		if err != nil {
			return nil, err
		}
		entry.QuestionReview = make([]QuestionReview, 0, len(responses))
		for _, resp := range responses {
			entry.QuestionReview = append(entry.QuestionReview, QuestionReview{
				QuestionID:   resp.QuestionID,
				Level:        levels[resp.QuestionID],
				Answered:     resp.SelectedChoiceID != nil || resp.TextResponse != "",
				IsCorrect:    resp.IsCorrect,
				TextResponse: resp.TextResponse,
			})
		}

		history = append(history, entry)
	}
	return history, nil
}
