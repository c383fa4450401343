package repository

import (
	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Upsert writes the authoritative result for (profile, assessment, level).
// A resubmission of the same level updates the existing row in place.
func (r *ResultRepository) Upsert(tx *gorm.DB, result *model.Result) error {
	if tx == nil {
		tx = r.DB
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "profile_id"}, {Name: "assessment_id"}, {Name: "level"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"score", "passed", "updated_at"}),
	}).Create(result).Error
	if err != nil {
		return err
	}
	var stored model.Result
	if err := tx.Where("profile_id = ? AND assessment_id = ? AND level = ?",
		result.ProfileID, result.AssessmentID, result.Level).First(&stored).Error; err != nil {
		return err
	}
	*result = stored
	return nil
}

// AttachFeedback creates the result's feedback row if it does not exist yet.
func (r *ResultRepository) AttachFeedback(tx *gorm.DB, resultID uint, recommendation string) (*model.Feedback, error) {
	if tx == nil {
		tx = r.DB
	}
	fb := &model.Feedback{ResultID: resultID, Recommendation: recommendation}
	err := tx.Where(model.Feedback{ResultID: resultID}).
		Attrs(model.Feedback{Recommendation: recommendation}).
		FirstOrCreate(fb).Error
	return fb, err
}

func (r *ResultRepository) ListByAssessment(assessmentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("assessment_id = ?", assessmentID).Order("level asc").Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindFeedback(resultID uint) (*model.Feedback, error) {
	var fb model.Feedback
	err := r.DB.Where("result_id = ?", resultID).First(&fb).Error
	if err != nil {
		return nil, err
	}
	return &fb, nil
}
