package repository

import (
	"time"

	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

// FindActiveByProfile returns the profile's in-progress assessment, if any.
func (r *AssessmentRepository) FindActiveByProfile(profileID uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("profile_id = ? AND completed_at IS NULL", profileID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListByProfile(profileID uint) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("profile_id = ?", profileID).Order("started_at desc").Find(&as).Error
	return as, err
}

// CreatePlaceholders inserts one empty response row per question, skipping
// rows that already exist. Safe to call repeatedly for the same level.
func (r *AssessmentRepository) CreatePlaceholders(tx *gorm.DB, assessmentID, profileID uint, questions []model.AssessmentQuestion) error {
	if tx == nil {
		tx = r.DB
	}
	if len(questions) == 0 {
		return nil
	}
	rows := make([]model.AssessmentResponse, len(questions))
	for i, q := range questions {
		rows[i] = model.AssessmentResponse{
			AssessmentID: assessmentID,
			QuestionID:   q.ID,
			ProfileID:    profileID,
		}
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}

// UpsertResponse atomically inserts or overwrites the unique
// (assessment, question) row, then reloads it so the caller sees the stored id.
func (r *AssessmentRepository) UpsertResponse(resp *model.AssessmentResponse) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assessment_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_choice_id", "text_response", "is_correct", "submitted_at", "updated_at",
		}),
	}).Create(resp).Error
	if err != nil {
		return err
	}
	var stored model.AssessmentResponse
	if err := r.DB.Where("assessment_id = ? AND question_id = ?", resp.AssessmentID, resp.QuestionID).
		First(&stored).Error; err != nil {
		return err
	}
	*resp = stored
	return nil
}

// ListResponsesByLevel returns the assessment's responses to questions of the
// given level.
func (r *AssessmentRepository) ListResponsesByLevel(assessmentID uint, level model.Level) ([]model.AssessmentResponse, error) {
	var rs []model.AssessmentResponse
	err := r.DB.
		Joins("JOIN assessment_questions ON assessment_questions.id = assessment_responses.question_id").
		Where("assessment_responses.assessment_id = ? AND assessment_questions.level = ?", assessmentID, level).
		Order("assessment_responses.question_id asc").
		Find(&rs).Error
	return rs, err
}

func (r *AssessmentRepository) ListResponses(assessmentID uint) ([]model.AssessmentResponse, error) {
	var rs []model.AssessmentResponse
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("question_id asc").Find(&rs).Error
	return rs, err
}

func (r *AssessmentRepository) AdvanceLevel(tx *gorm.DB, assessmentID uint, next model.Level) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.Assessment{}).Where("id = ?", assessmentID).
		Update("current_level", next).Error
}

func (r *AssessmentRepository) Complete(tx *gorm.DB, assessmentID uint, at time.Time) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Model(&model.Assessment{}).Where("id = ?", assessmentID).
		Update("completed_at", at).Error
}
