package service

import (
	"context"
	"errors"
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
)

func newQuestionService(t *testing.T) (*QuestionService, func() []model.AssessmentQuestion) {
	t.Helper()
	db := newTestDB(t)
	svc := NewQuestionService(repository.NewQuestionRepository(db), nil)
	dump := func() []model.AssessmentQuestion {
		qs, err := svc.ListAll()
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		return qs
	}
	return svc, dump
}

func mcRequest(level model.Level) QuestionRequest {
	return QuestionRequest{
		Level: level,
		Type:  model.MultipleChoice,
		Text:  "pick one",
		Choices: []ChoiceRequest{
			{Text: "right", IsCorrect: true},
			{Text: "wrong"},
		},
	}
}

func TestCreateQuestionAssignsPositions(t *testing.T) {
	svc, dump := newQuestionService(t)

	q, err := svc.Create(context.Background(), mcRequest(model.Level1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(q.Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(q.Choices))
	}
	if q.Choices[0].Position != 1 || q.Choices[1].Position != 2 {
		t.Fatalf("positions = %d,%d, want 1,2", q.Choices[0].Position, q.Choices[1].Position)
	}
	if len(dump()) != 1 {
		t.Fatal("question not persisted")
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	svc, _ := newQuestionService(t)
	ctx := context.Background()

	bad := mcRequest(model.Level1)
	bad.Level = model.Level("7")
	if _, err := svc.Create(ctx, bad); !errors.Is(err, util.ErrInvalidLevel) {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}

	oneChoice := mcRequest(model.Level1)
	oneChoice.Choices = oneChoice.Choices[:1]
	if _, err := svc.Create(ctx, oneChoice); err == nil {
		t.Fatal("expected an error for a single-choice question")
	}

	noCorrect := mcRequest(model.Level1)
	noCorrect.Choices = []ChoiceRequest{{Text: "a"}, {Text: "b"}}
	if _, err := svc.Create(ctx, noCorrect); err == nil {
		t.Fatal("expected an error for a question without a correct choice")
	}

	// Open-ended questions carry no choices and skip the MC checks.
	openEnded := QuestionRequest{Level: model.Level2, Type: model.OpenEnded, Text: "explain"}
	if _, err := svc.Create(ctx, openEnded); err != nil {
		t.Fatalf("open-ended create: %v", err)
	}
}

func TestUpdateQuestionReplacesChoices(t *testing.T) {
	svc, _ := newQuestionService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, mcRequest(model.Level1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, q.ID, QuestionRequest{
		Level: model.Level2,
		Type:  model.MultipleChoice,
		Text:  "revised",
		Choices: []ChoiceRequest{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
			{Text: "c"},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Level != model.Level2 || updated.Text != "revised" {
		t.Fatalf("updated = %+v", updated)
	}
	if len(updated.Choices) != 3 {
		t.Fatalf("choices = %d, want 3", len(updated.Choices))
	}

	reloaded, err := svc.Get(q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(reloaded.Choices) != 3 {
		t.Fatalf("reloaded choices = %d, want 3 (old set should be gone)", len(reloaded.Choices))
	}
}

func TestUpdateMissingQuestion(t *testing.T) {
	svc, _ := newQuestionService(t)

	if _, err := svc.Update(context.Background(), 404, mcRequest(model.Level1)); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	svc, dump := newQuestionService(t)
	ctx := context.Background()

	q, err := svc.Create(ctx, mcRequest(model.Level1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(dump()) != 0 {
		t.Fatal("question should be gone")
	}
	if err := svc.Delete(ctx, q.ID); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestListForLevelHidesCorrectness(t *testing.T) {
	svc, _ := newQuestionService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, mcRequest(model.Level1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := svc.ListForLevel(ctx, model.Level1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if len(views[0].Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(views[0].Choices))
	}

	if _, err := svc.ListForLevel(ctx, model.Level("9")); !errors.Is(err, util.ErrInvalidLevel) {
		t.Fatalf("err = %v, want ErrInvalidLevel", err)
	}
}
