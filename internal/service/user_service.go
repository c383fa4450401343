package service

import (
	"errors"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*model.Profile, error) {
	profile, err := s.UserRepo.FindProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if err := s.UserRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) SetAvatar(userID uint, url string) (*model.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.Avatar = url
	if err := s.UserRepo.UpdateProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
