package handler

import (
	"context"
	"net/http"
	"time"

	"trailblazer/pkg/logger"
	"trailblazer/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler 健康检查
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client // 可为 nil
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// HealthStatus 各依赖状态
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis,omitempty"`
}

// Health 检查数据库（以及启用时的 Redis）连通性
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{Status: "ok", Database: "ok"}

	if err := h.pingDB(ctx); err != nil {
		logger.Log.Warn("health check: database unreachable", zap.Error(err))
		status.Status = "degraded"
		status.Database = "unreachable"
	}
	if h.redis != nil {
		status.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("health check: redis unreachable", zap.Error(err))
			status.Status = "degraded"
			status.Redis = "unreachable"
		}
	}

	if status.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    response.ErrServerInternal,
			Message: status.Status,
			Data:    status,
		})
		return
	}
	response.Success(c, status)
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
