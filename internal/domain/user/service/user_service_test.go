package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"trailblazer/internal/domain/user/model"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/internal/pkg/config"
	"trailblazer/pkg/cache"
	"trailblazer/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) ([]uint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func setupJWT(t *testing.T) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig.JWT = config.JWTConfig{Secret: "test-secret", Algorithm: "HS256", ExpireMinutes: 60}
	passwordCost = bcrypt.MinCost
	t.Cleanup(func() {
		config.GlobalConfig = prev
		passwordCost = bcrypt.DefaultCost
	})
}

func TestUserService_Register(t *testing.T) {
	setupJWT(t)
	ctx := context.Background()

	t.Run("success issues token", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)

		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 7
		}).Return(nil)

		res, err := s.Register(ctx, "hiker@example.com", "password123", "")
		require.NoError(t, err)
		assert.Equal(t, "bearer", res.TokenType)
		assert.Equal(t, "hiker", res.User.DisplayName)
		assert.Equal(t, model.RoleUser, res.User.Role)
		assert.NotEqual(t, "password123", res.User.PasswordHash)
		assert.True(t, res.ExpiresAt.After(time.Now()))

		claims, err := utils.ParseToken(res.AccessToken)
		require.NoError(t, err)
		id, err := utils.SubjectID(claims)
		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
		repo.AssertExpectations(t)
	})

	t.Run("admin email gets admin role", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, []string{"ranger@example.com"}, nil)

		repo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		res, err := s.Register(ctx, "ranger@example.com", "password123", "Ranger")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, res.User.Role)
		assert.Equal(t, "Ranger", res.User.DisplayName)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)

		repo.On("Create", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)

		_, err := s.Register(ctx, "hiker@example.com", "password123", "")
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestUserService_Login(t *testing.T) {
	setupJWT(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &model.User{Email: "hiker@example.com", PasswordHash: string(hash)}
	stored.ID = 3

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)
		repo.On("GetByEmail", ctx, "hiker@example.com").Return(stored, nil)

		res, err := s.Login(ctx, "hiker@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, uint(3), res.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)
		repo.On("GetByEmail", ctx, "hiker@example.com").Return(stored, nil)

		_, err := s.Login(ctx, "hiker@example.com", "nope")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("unknown email looks the same as wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := s.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Equal(t, errBadCredentials.Error(), err.Error())
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("invalidates cached trails", func(t *testing.T) {
		repo := new(MockUserRepository)
		mc := cache.NewMemoryCache()
		require.NoError(t, mc.Set(ctx, "trail:1", "x", time.Minute))
		require.NoError(t, mc.Set(ctx, "trail:2", "y", time.Minute))

		s := NewUserService(repo, nil, mc)
		repo.On("Delete", ctx, uint(5)).Return([]uint{1}, nil)

		require.NoError(t, s.DeleteAccount(ctx, 5))

		var v string
		assert.ErrorIs(t, mc.Get(ctx, "trail:1", &v), cache.ErrCacheMiss)
		assert.NoError(t, mc.Get(ctx, "trail:2", &v))
	})

	t.Run("missing user", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)
		repo.On("Delete", ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		err := s.DeleteAccount(ctx, 9)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("storage error passes through", func(t *testing.T) {
		repo := new(MockUserRepository)
		s := NewUserService(repo, nil, nil)
		boom := errors.New("boom")
		repo.On("Delete", ctx, uint(9)).Return(nil, boom)

		assert.ErrorIs(t, s.DeleteAccount(ctx, 9), boom)
	})
}
