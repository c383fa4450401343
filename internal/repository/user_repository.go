package repository

import (
	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateWithProfile inserts the user and its profile in one transaction so a
// user can never exist without a profile.
func (r *UserRepository) CreateWithProfile(user *model.User) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		profile.FullName = user.Name
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) FindProfileByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *UserRepository) FindProfileByID(id uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.First(&profile, id).Error
	return &profile, err
}

func (r *UserRepository) UpdateProfile(profile *model.Profile) error {
	return r.DB.Save(profile).Error
}
