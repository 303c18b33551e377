package user

import (
	"trailblazer/internal/domain/user/handler"

	"github.com/gin-gonic/gin"
)

// setupRoutes 设置用户模块路由
func setupRoutes(r *gin.Engine, h *handler.UserHandler, auth gin.HandlerFunc) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// 受保护的路由
	me := r.Group("/auth/me", auth)
	{
		me.GET("", h.Me)
		me.DELETE("", h.DeleteMe)
	}
}
