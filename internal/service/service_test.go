package service

import (
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.AssessmentQuestion{},
		&model.Choice{},
		&model.Assessment{},
		&model.AssessmentResponse{},
		&model.Result{},
		&model.Feedback{},
		&model.TelemetryEvent{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newAssessmentService(db *gorm.DB) *AssessmentService {
	return NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResultRepository(db),
		repository.NewUserRepository(db),
		db,
	)
}

func seedLearner(t *testing.T, db *gorm.DB, email string) *model.Profile {
	t.Helper()
	user := &model.User{Name: "Test Learner", Email: email, Password: "x", Role: model.Learner}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	profile := &model.Profile{UserID: user.ID, FullName: "Test Learner"}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

// seedQuestions inserts n multiple-choice questions for the level, each with
// one correct and one wrong choice.
func seedQuestions(t *testing.T, db *gorm.DB, level model.Level, n int) []model.AssessmentQuestion {
	t.Helper()
	out := make([]model.AssessmentQuestion, 0, n)
	for i := 0; i < n; i++ {
		q := model.AssessmentQuestion{
			Level: level,
			Type:  model.MultipleChoice,
			Text:  "question",
			Choices: []model.Choice{
				{Text: "right", IsCorrect: true, Position: 1},
				{Text: "wrong", Position: 2},
			},
		}
		if err := db.Create(&q).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
		out = append(out, q)
	}
	return out
}

// correctChoice returns the id of the question's correct option.
func correctChoice(t *testing.T, q model.AssessmentQuestion) uint {
	t.Helper()
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c.ID
		}
	}
	t.Fatal("question has no correct choice")
	return 0
}

func wrongChoice(t *testing.T, q model.AssessmentQuestion) uint {
	t.Helper()
	for _, c := range q.Choices {
		if !c.IsCorrect {
			return c.ID
		}
	}
	t.Fatal("question has no wrong choice")
	return 0
}
