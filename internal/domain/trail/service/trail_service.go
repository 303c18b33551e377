package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	parkRepository "trailblazer/internal/domain/park/repository"
	"trailblazer/internal/domain/trail/model"
	"trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/internal/pkg/uploader"
	"trailblazer/pkg/database"
	"trailblazer/pkg/geo"
	"trailblazer/pkg/metrics"

	"gorm.io/gorm"
)

const (
	DefaultListLimit   = 100
	NearbyResultLimit  = 50
	DefaultRadiusKm    = 50.0
	MinRadiusKm        = 0.1
	MaxRadiusKm        = 200.0
	DefaultSearchLimit = 50
	MaxSearchLimit     = 100
	MaxReviewBodyLen   = 2000
)

// ReviewResult 新评价及更新后的步道聚合
type ReviewResult struct {
	Review *model.Review `json:"review"`
	Trail  *model.Trail  `json:"trail"`
}

// PhotoUpload 上传的照片
type PhotoUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
	Caption     *string
}

type TrailService interface {
	ListTrails(ctx context.Context, near string, radiusKm *float64) ([]model.Trail, error)
	SearchTrails(ctx context.Context, query, near string, limit int) ([]model.Trail, error)
	GetTrail(ctx context.Context, id uint) (*model.Trail, error)
	CreateTrail(ctx context.Context, trail *model.Trail) (*model.Trail, error)
	DeleteTrail(ctx context.Context, id uint) error

	AddReview(ctx context.Context, userID, trailID uint, rating int, body *string) (*ReviewResult, error)
	ListReviews(ctx context.Context, trailID uint) ([]model.Review, error)

	UploadPhoto(ctx context.Context, userID, trailID uint, upload PhotoUpload) (*model.Photo, error)
	ListPhotos(ctx context.Context, trailID uint) ([]model.Photo, error)
}

type trailService struct {
	repo     repository.TrailRepository
	parks    parkRepository.ParkRepository
	uploader uploader.Uploader
	metrics  *metrics.MetricsCollector
	now      func() time.Time
}

func NewTrailService(repo repository.TrailRepository, parks parkRepository.ParkRepository, up uploader.Uploader, mc *metrics.MetricsCollector) TrailService {
	return &trailService{repo: repo, parks: parks, uploader: up, metrics: mc, now: time.Now}
}

// ListTrails 无 near 时按 id 返回前 100 条；有 near 时返回半径内按评分降序、长度升序的前 50 条
func (s *trailService) ListTrails(ctx context.Context, near string, radiusKm *float64) ([]model.Trail, error) {
	radius := DefaultRadiusKm
	if radiusKm != nil {
		radius = *radiusKm
	}
	if radius < MinRadiusKm || radius > MaxRadiusKm {
		return nil, apperr.Invalid("radius must be between %g and %g km", MinRadiusKm, MaxRadiusKm)
	}

	if near == "" {
		return s.repo.List(ctx, DefaultListLimit)
	}

	origin, err := geo.ParsePoint(near)
	if err != nil {
		return nil, apperr.Invalid("invalid 'near' format, use 'lat,lon'")
	}

	candidates, err := s.repo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.Trail, 0, len(candidates))
	for _, t := range candidates {
		if !t.HasCoordinates() {
			continue
		}
		d := geo.HaversineKm(origin, geo.Point{Lat: *t.Lat, Lon: *t.Lon})
		if d <= radius {
			t.DistanceKm = &d
			results = append(results, t)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AvgRating != results[j].AvgRating {
			return results[i].AvgRating > results[j].AvgRating
		}
		return lengthOrMax(results[i]) < lengthOrMax(results[j])
	})

	if len(results) > NearbyResultLimit {
		results = results[:NearbyResultLimit]
	}
	return results, nil
}

// lengthOrMax 长度未知的排在最后
func lengthOrMax(t model.Trail) float64 {
	if t.LengthKm == nil {
		return 1e18
	}
	return *t.LengthKm
}

// SearchTrails 名称模糊搜索；near 合法时有坐标的按距离升序，无坐标的保持原顺序排在后面
func (s *trailService) SearchTrails(ctx context.Context, query, near string, limit int) ([]model.Trail, error) {
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	if limit < 1 || limit > MaxSearchLimit {
		return nil, apperr.Invalid("limit must be between 1 and %d", MaxSearchLimit)
	}

	trails, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if near == "" {
		return trails, nil
	}

	origin, err := geo.ParsePoint(near)
	if err != nil {
		// near 解析失败时静默回退为原顺序
		return trails, nil
	}

	located := make([]model.Trail, 0, len(trails))
	var unlocated []model.Trail
	for _, t := range trails {
		if !t.HasCoordinates() {
			unlocated = append(unlocated, t)
			continue
		}
		d := geo.HaversineKm(origin, geo.Point{Lat: *t.Lat, Lon: *t.Lon})
		t.DistanceKm = &d
		located = append(located, t)
	}
	sort.SliceStable(located, func(i, j int) bool {
		return *located[i].DistanceKm < *located[j].DistanceKm
	})
	return append(located, unlocated...), nil
}

func (s *trailService) GetTrail(ctx context.Context, id uint) (*model.Trail, error) {
	trail, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("trail")
		}
		return nil, err
	}
	return trail, nil
}

// CreateTrail 社区创建步道，评分聚合从零开始
func (s *trailService) CreateTrail(ctx context.Context, trail *model.Trail) (*model.Trail, error) {
	trail.Name = strings.TrimSpace(trail.Name)
	if trail.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if trail.Difficulty == "" {
		trail.Difficulty = "moderate"
	}
	if trail.ParkID != nil {
		ok, err := s.parks.Exists(ctx, *trail.ParkID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound("park")
		}
	}

	trail.ID = 0
	trail.AvgRating = 0
	trail.RatingsCount = 0
	if err := s.repo.Create(ctx, trail); err != nil {
		if database.IsIntegrityViolation(err) {
			return nil, fmt.Errorf("%w: trail could not be saved", apperr.ErrConflict)
		}
		return nil, err
	}
	return trail, nil
}

func (s *trailService) DeleteTrail(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("trail")
		}
		return err
	}
	return nil
}

// AddReview 评分校验在任何写入之前完成
func (s *trailService) AddReview(ctx context.Context, userID, trailID uint, rating int, body *string) (*ReviewResult, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Invalid("rating must be between 1 and 5")
	}
	if body != nil && len([]rune(*body)) > MaxReviewBodyLen {
		return nil, apperr.Invalid("body must be at most %d characters", MaxReviewBodyLen)
	}
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}

	review := &model.Review{TrailID: trailID, UserID: userID, Rating: rating, Body: body}
	trail, err := s.repo.AddReview(ctx, review)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("trail")
		}
		if database.IsIntegrityViolation(err) {
			return nil, apperr.Invalid("review could not be saved")
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordReview()
	}
	return &ReviewResult{Review: review, Trail: trail}, nil
}

func (s *trailService) ListReviews(ctx context.Context, trailID uint) ([]model.Review, error) {
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, trailID)
}

// UploadPhoto 只接受 image/* 类型
func (s *trailService) UploadPhoto(ctx context.Context, userID, trailID uint, upload PhotoUpload) (*model.Photo, error) {
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return nil, apperr.Invalid("only images allowed")
	}

	objectPath := uploader.TrailPhotoPath(trailID, upload.Filename, s.now())
	if err := s.uploader.Save(ctx, objectPath, upload.Reader, upload.ContentType); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	photo := &model.Photo{
		TrailID:  trailID,
		UserID:   userID,
		FilePath: objectPath,
		Caption:  upload.Caption,
	}
	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	photo.URL = s.uploader.URL(photo.FilePath)
	return photo, nil
}

func (s *trailService) ListPhotos(ctx context.Context, trailID uint) ([]model.Photo, error) {
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}
	photos, err := s.repo.ListPhotos(ctx, trailID)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		photos[i].URL = s.uploader.URL(photos[i].FilePath)
	}
	return photos, nil
}

func (s *trailService) ensureTrail(ctx context.Context, id uint) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("trail")
	}
	return nil
}
