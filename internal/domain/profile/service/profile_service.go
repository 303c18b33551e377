package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"trailblazer/internal/domain/profile/model"
	"trailblazer/internal/domain/profile/repository"
	userModel "trailblazer/internal/domain/user/model"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/utils"

	"gorm.io/gorm"
)

// UserLookup 读取用户
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*userModel.User, error)
}

// ProfileUpdate 部分更新：未设置的字段保持不变，显式 null 清空
type ProfileUpdate struct {
	AvatarURL utils.Optional[string]
	Bio       utils.Optional[string]
	HomeState utils.Optional[string]
	HomeLat   utils.Optional[float64]
	HomeLon   utils.Optional[float64]
}

func (u ProfileUpdate) validate() error {
	if v := u.AvatarURL.Value; v != nil && utf8.RuneCountInString(*v) > 500 {
		return apperr.Invalid("avatar_url must be at most 500 characters")
	}
	if v := u.Bio.Value; v != nil && utf8.RuneCountInString(*v) > 1000 {
		return apperr.Invalid("bio must be at most 1000 characters")
	}
	if v := u.HomeState.Value; v != nil && utf8.RuneCountInString(*v) > 50 {
		return apperr.Invalid("home_state must be at most 50 characters")
	}
	if v := u.HomeLat.Value; v != nil && (*v < -90 || *v > 90) {
		return apperr.Invalid("home_lat must be between -90 and 90")
	}
	if v := u.HomeLon.Value; v != nil && (*v < -180 || *v > 180) {
		return apperr.Invalid("home_lon must be between -180 and 180")
	}
	return nil
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*model.ProfileView, error)
	UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.ProfileView, error)
}

type profileService struct {
	repo  repository.ProfileRepository
	users UserLookup
}

func NewProfileService(repo repository.ProfileRepository, users UserLookup) ProfileService {
	return &profileService{repo: repo, users: users}
}

// GetProfile 用户不存在返回 not found，资料不存在则创建
func (s *profileService) GetProfile(ctx context.Context, userID uint) (*model.ProfileView, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profile.View(user.DisplayName), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*model.ProfileView, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.AvatarURL.Apply(&profile.AvatarURL)
	in.Bio.Apply(&profile.Bio)
	in.HomeState.Apply(&profile.HomeState)
	in.HomeLat.Apply(&profile.HomeLat)
	in.HomeLon.Apply(&profile.HomeLon)

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile.View(user.DisplayName), nil
}

func (s *profileService) user(ctx context.Context, id uint) (*userModel.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}
