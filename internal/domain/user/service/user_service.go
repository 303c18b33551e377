package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	trailService "trailblazer/internal/domain/trail/service"
	"trailblazer/internal/domain/user/model"
	"trailblazer/internal/domain/user/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/cache"
	"trailblazer/pkg/database"
	"trailblazer/pkg/logger"
	"trailblazer/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// passwordCost bcrypt 计算强度，测试中调低
var passwordCost = bcrypt.DefaultCost

var errBadCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)

// AuthResult 登录/注册返回
type AuthResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *model.User `json:"user"`
}

// UserService 用户服务接口
type UserService interface {
	Register(ctx context.Context, email, password, displayName string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	DeleteAccount(ctx context.Context, id uint) error
}

// userService 实现
type userService struct {
	repo        repository.UserRepository
	adminEmails map[string]bool
	cache       cache.CacheService // 可为 nil
}

// NewUserService 创建用户服务，adminEmails 中的邮箱注册时授予管理员角色
func NewUserService(repo repository.UserRepository, adminEmails []string, c cache.CacheService) UserService {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[e] = true
	}
	return &userService{repo: repo, adminEmails: admins, cache: c}
}

// Register 注册并直接签发 token
func (s *userService) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, err
	}

	role := model.RoleUser
	if s.adminEmails[email] {
		role = model.RoleAdmin
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return nil, err
	}

	return s.issue(user)
}

// Login 邮箱密码登录
func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}

	return s.issue(user)
}

func (s *userService) issue(user *model.User) (*AuthResult, error) {
	token, expireAt, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expireAt,
		User:        user,
	}, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount 删除账号及其全部数据，受影响步道的缓存一并失效
func (s *userService) DeleteAccount(ctx context.Context, id uint) error {
	trailIDs, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user")
		}
		return err
	}

	if s.cache != nil && len(trailIDs) > 0 {
		keys := make([]string, len(trailIDs))
		for i, tid := range trailIDs {
			keys[i] = trailService.TrailCacheKey(tid)
		}
		if err := s.cache.Delete(ctx, keys...); err != nil {
			logger.Log.Warn("failed to invalidate trail cache after account deletion", zap.Error(err))
		}
	}
	return nil
}
