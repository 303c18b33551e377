package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trailblazer/internal/domain/user/model"
	"trailblazer/internal/pkg/config"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

type fakeUsers map[uint]*model.User

func (f fakeUsers) GetByID(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func setupJWT(t *testing.T, expireMinutes int) {
	t.Helper()
	prev := config.GlobalConfig
	config.GlobalConfig.JWT = config.JWTConfig{Secret: "test-secret", Algorithm: "HS256", ExpireMinutes: expireMinutes}
	t.Cleanup(func() { config.GlobalConfig = prev })
}

func newUser(id uint, role string) *model.User {
	u := &model.User{Email: "u@example.com", Role: role}
	u.ID = id
	return u
}

func newRouter(users fakeUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := AuthMiddleware(users)
	r.GET("/me", auth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUser(c).ID})
	})
	r.GET("/admin", auth, AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func do(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	setupJWT(t, 60)
	r := newRouter(fakeUsers{1: newUser(1, model.RoleUser)})

	token, _, err := utils.GenerateToken(1)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		w := do(r, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		w := do(r, "/me", "bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		w := do(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		w := do(r, "/me", "Basic "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := do(r, "/me", "Bearer not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		orphan, _, err := utils.GenerateToken(99)
		require.NoError(t, err)
		w := do(r, "/me", "Bearer "+orphan)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthMiddleware_Expired(t *testing.T) {
	setupJWT(t, -1)
	token, _, err := utils.GenerateToken(1)
	require.NoError(t, err)

	r := newRouter(fakeUsers{1: newUser(1, model.RoleUser)})
	w := do(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	setupJWT(t, 60)
	r := newRouter(fakeUsers{
		1: newUser(1, model.RoleUser),
		2: newUser(2, model.RoleAdmin),
	})

	userToken, _, err := utils.GenerateToken(1)
	require.NoError(t, err)
	adminToken, _, err := utils.GenerateToken(2)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", "Bearer "+adminToken).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/admin", "").Code)
}

func TestRecoveryAndSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryMiddleware(), TraceMiddleware(), SecurityHeadersMiddleware())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := do(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get(traceIDHeader))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(NewIPRateLimiter(rate.Limit(0.001), 2)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, "/", "").Code)
}
