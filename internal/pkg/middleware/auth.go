package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"trailblazer/internal/domain/user/model"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ctxUserID = "userID"
	ctxUser   = "user"
)

// UserLookup 按 token 中的 sub 查找用户
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

// AuthMiddleware JWT认证中间件，无状态，每次请求独立校验
func AuthMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "Authorization header is required")
			return
		}

		// 检查格式 "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthenticated(c, "Invalid authorization header format")
			return
		}

		claims, err := utils.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		// 独立于 jwt 库的过期检查
		if !time.Now().Before(claims.ExpiresAt.Time) {
			abortUnauthenticated(c, "Token expired")
			return
		}

		userID, err := utils.SubjectID(claims)
		if err != nil {
			abortUnauthenticated(c, "Invalid token subject")
			return
		}

		// 账号已删除但 token 仍有效的情况
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthenticated(c, "User not found")
				return
			}
			response.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUserID, user.ID)
		c.Set(ctxUser, user)
		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件，需在 AuthMiddleware 之后使用
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthenticated(c, "Unauthorized")
			return
		}

		if user.Role != model.RoleAdmin {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Admin permission required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser 获取认证后的用户
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	response.Error(c, http.StatusUnauthorized, response.ErrUnauthenticated, msg)
	c.Abort()
}
