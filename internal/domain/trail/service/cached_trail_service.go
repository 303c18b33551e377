package service

import (
	"context"
	"fmt"
	"time"

	"trailblazer/internal/domain/trail/model"
	"trailblazer/pkg/cache"
	"trailblazer/pkg/logger"
	"trailblazer/pkg/metrics"

	"go.uber.org/zap"
)

// 缓存键常量
const (
	TrailCacheKeyPrefix   = "trail:"
	TrailVersionKeyPrefix = "trailver:"
	TrailCacheTTL         = time.Minute * 5
)

// TrailCacheKey 单个步道的缓存键
func TrailCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", TrailCacheKeyPrefix, id)
}

// TrailVersionKey 步道缓存版本号，每次失效时更新；与 trail: 前缀分开，按模式清理步道缓存时不会被一并删除
func TrailVersionKey(id uint) string {
	return fmt.Sprintf("%s%d", TrailVersionKeyPrefix, id)
}

// CachedTrailService 带缓存的步道服务，只缓存详情，评分变化或删除时失效
type CachedTrailService struct {
	TrailService
	cache   cache.CacheService
	metrics *metrics.MetricsCollector
}

// NewCachedTrailService 创建带缓存的步道服务
func NewCachedTrailService(inner TrailService, c cache.CacheService, mc *metrics.MetricsCollector) TrailService {
	return &CachedTrailService{TrailService: inner, cache: c, metrics: mc}
}

// GetTrail 获取步道（带缓存）
func (s *CachedTrailService) GetTrail(ctx context.Context, id uint) (*model.Trail, error) {
	key := TrailCacheKey(id)

	var trail model.Trail
	if err := s.cache.Get(ctx, key, &trail); err == nil {
		s.recordLookup(true)
		return &trail, nil
	}
	s.recordLookup(false)

	version := s.version(ctx, id)
	got, err := s.TrailService.GetTrail(ctx, id)
	if err != nil {
		return nil, err
	}

	// 读库期间发生过失效，读到的可能是旧值，不回填
	if s.version(ctx, id) != version {
		return got, nil
	}
	// 缓存失败不影响业务逻辑，只记录日志
	if err := s.cache.Set(ctx, key, got, TrailCacheTTL); err != nil {
		logger.Log.Warn("failed to cache trail", zap.Uint("trail_id", id), zap.Error(err))
		return got, nil
	}
	// 检查与回填之间仍可能插入一次失效，回填后再确认一次
	if s.version(ctx, id) != version {
		s.invalidate(ctx, id)
	}
	return got, nil
}

// AddReview 评分变化后清除缓存
func (s *CachedTrailService) AddReview(ctx context.Context, userID, trailID uint, rating int, body *string) (*ReviewResult, error) {
	res, err := s.TrailService.AddReview(ctx, userID, trailID, rating, body)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, trailID)
	return res, nil
}

// DeleteTrail 删除后清除缓存
func (s *CachedTrailService) DeleteTrail(ctx context.Context, id uint) error {
	if err := s.TrailService.DeleteTrail(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// invalidate 先更新版本号再删除缓存
func (s *CachedTrailService) invalidate(ctx context.Context, id uint) {
	if err := s.cache.Set(ctx, TrailVersionKey(id), time.Now().UnixNano(), 2*TrailCacheTTL); err != nil {
		logger.Log.Warn("failed to bump trail cache version", zap.Uint("trail_id", id), zap.Error(err))
	}
	if err := s.cache.Delete(ctx, TrailCacheKey(id)); err != nil {
		logger.Log.Warn("failed to invalidate trail cache", zap.Uint("trail_id", id), zap.Error(err))
	}
}

// version 读取当前版本号，不存在时为 0
func (s *CachedTrailService) version(ctx context.Context, id uint) int64 {
	var v int64
	if err := s.cache.Get(ctx, TrailVersionKey(id), &v); err != nil {
		return 0
	}
	return v
}

func (s *CachedTrailService) recordLookup(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup("trail", hit)
	}
}
