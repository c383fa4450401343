package repository

import (
	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListByLevel(tx *gorm.DB, level model.Level) ([]model.AssessmentQuestion, error) {
	if tx == nil {
		tx = r.DB
	}
	var qs []model.AssessmentQuestion
	err := tx.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, id asc")
	}).Where("level = ?", level).Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListAll() ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, id asc")
	}).Order("level asc, id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) FindByID(id uint) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, id asc")
	}).First(&q, id).Error
	return &q, err
}

// LevelsByID maps question ids to their level. Soft-deleted questions are
// included so history views stay complete after bank edits.
func (r *QuestionRepository) LevelsByID(ids []uint) (map[uint]model.Level, error) {
	levels := make(map[uint]model.Level, len(ids))
	if len(ids) == 0 {
		return levels, nil
	}
	var qs []model.AssessmentQuestion
	if err := r.DB.Unscoped().Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}
	for _, q := range qs {
		levels[q.ID] = q.Level
	}
	return levels, nil
}

func (r *QuestionRepository) FindChoice(id uint) (*model.Choice, error) {
	var c model.Choice
	err := r.DB.First(&c, id).Error
	return &c, err
}

// CreateWithChoices writes the question and its choices atomically.
func (r *QuestionRepository) CreateWithChoices(q *model.AssessmentQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

// ReplaceChoices swaps the question's choice set for a new one.
func (r *QuestionRepository) ReplaceChoices(q *model.AssessmentQuestion, choices []model.Choice) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		q.Choices = nil
		if err := tx.Save(q).Error; err != nil {
			return err
		}
		for i := range choices {
			choices[i].ID = 0
			choices[i].QuestionID = q.ID
		}
		if len(choices) > 0 {
			if err := tx.Create(&choices).Error; err != nil {
				return err
			}
		}
		q.Choices = choices
		return nil
	})
}

func (r *QuestionRepository) Update(q *model.AssessmentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AssessmentQuestion{}, id).Error
	})
}
