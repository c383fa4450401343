package service

import (
	"errors"
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
)

func recordAnswers(t *testing.T, svc *AssessmentService, assessmentID uint, profileID uint, questions []model.AssessmentQuestion, correct int) {
	t.Helper()
	for i, q := range questions {
		choiceID := wrongChoice(t, q)
		if i < correct {
			choiceID = correctChoice(t, q)
		}
		_, err := svc.RecordResponse(RecordResponseRequest{
			AssessmentID:     assessmentID,
			ProfileID:        profileID,
			QuestionID:       q.ID,
			SelectedChoiceID: &choiceID,
		})
		if err != nil {
			t.Fatalf("record response: %v", err)
		}
	}
}

func TestStartAssessmentCreatesPlaceholders(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	seedQuestions(t, db, model.Level1, 3)
	seedQuestions(t, db, model.Level2, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.CurrentLevel != model.Level1 {
		t.Fatalf("current level = %q, want %q", a.CurrentLevel, model.Level1)
	}

	var count int64
	db.Model(&model.AssessmentResponse{}).Where("assessment_id = ?", a.ID).Count(&count)
	if count != 3 {
		t.Fatalf("placeholder count = %d, want 3 (level 1 only)", count)
	}
}

func TestStartAssessmentConflictsWhileActive(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	seedQuestions(t, db, model.Level1, 1)

	if _, err := svc.StartAssessment(profile.UserID); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if _, err := svc.StartAssessment(profile.UserID); !errors.Is(err, util.ErrAssessmentActive) {
		t.Fatalf("second start err = %v, want ErrAssessmentActive", err)
	}
}

func TestStartAssessmentUnknownProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)

	if _, err := svc.StartAssessment(999); !errors.Is(err, util.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestRecordResponseUpsertsInPlace(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	questions := seedQuestions(t, db, model.Level1, 1)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	q := questions[0]
	wrong := wrongChoice(t, q)
	first, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: profile.ID, QuestionID: q.ID, SelectedChoiceID: &wrong,
	})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if first.IsCorrect == nil || *first.IsCorrect {
		t.Fatal("wrong choice should be marked incorrect")
	}

	right := correctChoice(t, q)
	second, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: profile.ID, QuestionID: q.ID, SelectedChoiceID: &right,
	})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.IsCorrect == nil || !*second.IsCorrect {
		t.Fatal("corrected choice should be marked correct")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row to be updated, got ids %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&model.AssessmentResponse{}).
		Where("assessment_id = ? AND question_id = ?", a.ID, q.ID).Count(&count)
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}
}

func TestRecordResponseRejectsForeignChoice(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	questions := seedQuestions(t, db, model.Level1, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Choice belongs to questions[1], submitted against questions[0].
	foreign := correctChoice(t, questions[1])
	_, err = svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: profile.ID, QuestionID: questions[0].ID, SelectedChoiceID: &foreign,
	})
	if !errors.Is(err, util.ErrChoiceMismatch) {
		t.Fatalf("err = %v, want ErrChoiceMismatch", err)
	}
}

func TestRecordResponseBadReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	questions := seedQuestions(t, db, model.Level1, 1)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: 999, ProfileID: profile.ID, QuestionID: questions[0].ID,
	}); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("err = %v, want ErrAssessmentNotFound", err)
	}

	if _, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: 999, QuestionID: questions[0].ID,
	}); !errors.Is(err, util.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}

	if _, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: profile.ID, QuestionID: 999,
	}); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSubmitLevelAdvances(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	l1 := seedQuestions(t, db, model.Level1, 5)
	seedQuestions(t, db, model.Level2, 4)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	recordAnswers(t, svc, a.ID, profile.ID, l1, 3) // 3/5 = 60, boundary pass

	outcome, err := svc.SubmitLevel(a.ID, profile.UserID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Passed || outcome.Score != 60 {
		t.Fatalf("outcome = %+v, want pass at 60", outcome)
	}
	if outcome.NextLevel == nil || *outcome.NextLevel != model.Level2 {
		t.Fatalf("next level = %v, want %q", outcome.NextLevel, model.Level2)
	}
	if outcome.Completed {
		t.Fatal("assessment should still be in progress")
	}

	reloaded, err := svc.AssessmentRepo.FindByID(a.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CurrentLevel != model.Level2 {
		t.Fatalf("current level = %q, want %q", reloaded.CurrentLevel, model.Level2)
	}

	// Advancing must open placeholder rows for the next level.
	var count int64
	db.Model(&model.AssessmentResponse{}).Where("assessment_id = ?", a.ID).Count(&count)
	if count != 9 {
		t.Fatalf("response rows = %d, want 9 (5 level-1 + 4 level-2)", count)
	}
}

func TestSubmitLevelFailureTerminates(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	l1 := seedQuestions(t, db, model.Level1, 4)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	recordAnswers(t, svc, a.ID, profile.ID, l1, 1) // 1/4 = 25, fail

	outcome, err := svc.SubmitLevel(a.ID, profile.UserID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Passed || !outcome.Completed {
		t.Fatalf("outcome = %+v, want failed and terminated", outcome)
	}
	if outcome.Feedback == "" {
		t.Fatal("failed level should carry remediation feedback")
	}

	reloaded, err := svc.AssessmentRepo.FindByID(a.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Completed() {
		t.Fatal("assessment should be terminal after a failure")
	}

	// Terminal assessments accept no further responses.
	right := correctChoice(t, l1[0])
	if _, err := svc.RecordResponse(RecordResponseRequest{
		AssessmentID: a.ID, ProfileID: profile.ID, QuestionID: l1[0].ID, SelectedChoiceID: &right,
	}); !errors.Is(err, util.ErrAssessmentComplete) {
		t.Fatalf("err = %v, want ErrAssessmentComplete", err)
	}
}

func TestSubmitLevelCompletesAfterLevelThree(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	questionsByLevel := map[model.Level][]model.AssessmentQuestion{}
	for _, level := range model.AllLevels() {
		questionsByLevel[level] = seedQuestions(t, db, level, 2)
	}

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	for i, level := range model.AllLevels() {
		recordAnswers(t, svc, a.ID, profile.ID, questionsByLevel[level], 2)
		outcome, err := svc.SubmitLevel(a.ID, profile.UserID)
		if err != nil {
			t.Fatalf("submit level %q: %v", level, err)
		}
		last := i == len(model.AllLevels())-1
		if outcome.Completed != last {
			t.Fatalf("level %q completed = %v, want %v", level, outcome.Completed, last)
		}
	}

	results, err := svc.ResultRepo.ListByAssessment(a.ID)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("result rows = %d, want 3", len(results))
	}
	for _, r := range results {
		if !r.Passed || r.Score != 100 {
			t.Fatalf("result %+v, want passed at 100", r)
		}
	}
}

func TestSubmitLevelIdempotentWhenCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	l1 := seedQuestions(t, db, model.Level1, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	recordAnswers(t, svc, a.ID, profile.ID, l1, 0)
	if _, err := svc.SubmitLevel(a.ID, profile.UserID); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	outcome, err := svc.SubmitLevel(a.ID, profile.UserID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !outcome.Completed {
		t.Fatal("resubmitting a terminal assessment should report completed")
	}

	var count int64
	db.Model(&model.Result{}).Where("assessment_id = ?", a.ID).Count(&count)
	if count != 1 {
		t.Fatalf("result rows = %d, want 1 after resubmit", count)
	}
}

func TestSubmitLevelAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	owner := seedLearner(t, db, "owner@example.com")
	other := seedLearner(t, db, "other@example.com")
	seedQuestions(t, db, model.Level1, 1)

	a, err := svc.StartAssessment(owner.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.SubmitLevel(a.ID, other.UserID); !errors.Is(err, util.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := svc.SubmitLevel(999, owner.UserID); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("err = %v, want ErrAssessmentNotFound", err)
	}
}

func TestSubmitLevelNoResponses(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	seedQuestions(t, db, model.Level1, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Placeholders exist but nothing was answered.
	if _, err := svc.SubmitLevel(a.ID, profile.UserID); !errors.Is(err, util.ErrNoResponses) {
		t.Fatalf("err = %v, want ErrNoResponses", err)
	}
}

func TestLatestResultsAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	l1 := seedQuestions(t, db, model.Level1, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	recordAnswers(t, svc, a.ID, profile.ID, l1, 0)
	if _, err := svc.SubmitLevel(a.ID, profile.UserID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	results, err := svc.LatestResults(profile.UserID)
	if err != nil {
		t.Fatalf("latest results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d rows, want 1", len(results))
	}
	if results[0].Passed || results[0].Feedback == "" {
		t.Fatalf("result = %+v, want failed row with feedback", results[0])
	}

	// A second, passing run becomes the latest.
	if _, err := svc.StartAssessment(profile.UserID); err != nil {
		t.Fatalf("second start: %v", err)
	}

	history, err := svc.History(profile.UserID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	var withReview *AssessmentHistory
	for i := range history {
		if history[i].AssessmentID == a.ID {
			withReview = &history[i]
		}
	}
	if withReview == nil {
		t.Fatal("first assessment missing from history")
	}
	if len(withReview.QuestionReview) != 2 {
		t.Fatalf("question review = %d rows, want 2", len(withReview.QuestionReview))
	}
}

func TestHistoryLevelsSurviveQuestionDeletion(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)
	profile := seedLearner(t, db, "a@example.com")
	l1 := seedQuestions(t, db, model.Level1, 2)

	a, err := svc.StartAssessment(profile.UserID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	recordAnswers(t, svc, a.ID, profile.ID, l1, 2)

	// Bank edits must not blank out the levels of past reviews.
	if err := repository.NewQuestionRepository(db).Delete(l1[0].ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	history, err := svc.History(profile.UserID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history = %d entries, want 1", len(history))
	}
	if len(history[0].QuestionReview) != 2 {
		t.Fatalf("question review = %d rows, want 2", len(history[0].QuestionReview))
	}
	for _, review := range history[0].QuestionReview {
		if review.Level != model.Level1 {
			t.Fatalf("question %d level = %q, want %q", review.QuestionID, review.Level, model.Level1)
		}
	}
}

func TestHistoryUnknownProfile(t *testing.T) {
	db := newTestDB(t)
	svc := newAssessmentService(db)

	if _, err := svc.History(42); !errors.Is(err, util.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
}
