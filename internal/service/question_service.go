package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const questionCacheTTL = 10 * time.Minute

type QuestionService struct {
	Repo  *repository.QuestionRepository
	Redis *redis.Client
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{Repo: repo, Redis: rdb}
}

// ChoiceView hides correctness from learners.
type ChoiceView struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type QuestionView struct {
	ID      uint               `json:"id"`
	Text    string             `json:"text"`
	Level   model.Level        `json:"level"`
	Type    model.QuestionType `json:"type"`
	Choices []ChoiceView       `json:"choices"`
}

func questionCacheKey(level model.Level) string {
	return "questions:level:" + string(level)
}

// ListForLevel serves the learner-facing question list for one level, read
// through a short-lived Redis cache.
func (s *QuestionService) ListForLevel(ctx context.Context, level model.Level) ([]QuestionView, error) {
	if !level.Valid() {
		return nil, util.ErrInvalidLevel
	}

	key := questionCacheKey(level)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var views []QuestionView
			if json.Unmarshal([]byte(cached), &views) == nil {
				return views, nil
			}
		}
	}

	questions, err := s.Repo.ListByLevel(nil, level)
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		view := QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Level:   q.Level,
			Type:    q.Type,
			Choices: make([]ChoiceView, len(q.Choices)),
		}
		for j, c := range q.Choices {
			view.Choices[j] = ChoiceView{ID: c.ID, Text: c.Text, Position: c.Position}
		}
		views[i] = view
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(views); err == nil {
			if err := s.Redis.Set(ctx, key, payload, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}
	return views, nil
}

func (s *QuestionService) invalidateCache(ctx context.Context, level model.Level) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionCacheKey(level)).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Position  int    `json:"position"`
}

type QuestionRequest struct {
	Level   model.Level        `json:"level" binding:"required"`
	Type    model.QuestionType `json:"type" binding:"required,oneof=MC OE"`
	Text    string             `json:"text" binding:"required"`
	Choices []ChoiceRequest    `json:"choices"`
}

func validateQuestion(req QuestionRequest) error {
	if !req.Level.Valid() {
		return util.ErrInvalidLevel
	}
	if req.Type == model.MultipleChoice {
		if len(req.Choices) < 2 {
			return errors.New("multiple-choice questions need at least two choices")
		}
		correct := 0
		for _, c := range req.Choices {
			if c.IsCorrect {
				correct++
			}
		}
		if correct == 0 {
			return errors.New("multiple-choice questions need at least one correct choice")
		}
	}
	return nil
}

func buildChoices(req QuestionRequest) []model.Choice {
	choices := make([]model.Choice, len(req.Choices))
	for i, c := range req.Choices {
		pos := c.Position
		if pos == 0 {
			pos = i + 1
		}
		choices[i] = model.Choice{Text: c.Text, IsCorrect: c.IsCorrect, Position: pos}
	}
	return choices
}

func (s *QuestionService) Create(ctx context.Context, req QuestionRequest) (*model.AssessmentQuestion, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q := &model.AssessmentQuestion{
		Level: req.Level,
		Type:  req.Type,
		Text:  req.Text,
	}
	if req.Type == model.MultipleChoice {
		q.Choices = buildChoices(req)
	}
	if err := s.Repo.CreateWithChoices(q); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, req.Level)
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id uint, req QuestionRequest) (*model.AssessmentQuestion, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}

	oldLevel := q.Level
	q.Level = req.Level
	q.Type = req.Type
	q.Text = req.Text

	var choices []model.Choice
	if req.Type == model.MultipleChoice {
		choices = buildChoices(req)
	}
	if err := s.Repo.ReplaceChoices(q, choices); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, oldLevel)
	s.invalidateCache(ctx, req.Level)
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return util.ErrQuestionNotFound
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx, q.Level)
	return nil
}

func (s *QuestionService) Get(id uint) (*model.AssessmentQuestion, error) {
	return s.Repo.FindByID(id)
}

// ListAll returns every question with correctness flags, for the admin bank.
func (s *QuestionService) ListAll() ([]model.AssessmentQuestion, error) {
	return s.Repo.ListAll()
}
