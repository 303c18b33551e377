package repository

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"trailblazer/internal/domain/trail/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrailRepository 步道、评价、照片的数据访问
type TrailRepository interface {
	List(ctx context.Context, limit int) ([]model.Trail, error)
	ListWithCoordinates(ctx context.Context) ([]model.Trail, error)
	Search(ctx context.Context, query string, limit int) ([]model.Trail, error)
	ListByPark(ctx context.Context, parkID uint) ([]model.Trail, error)
	GetByID(ctx context.Context, id uint) (*model.Trail, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, trail *model.Trail) error
	Delete(ctx context.Context, id uint) error

	AddReview(ctx context.Context, review *model.Review) (*model.Trail, error)
	ListReviews(ctx context.Context, trailID uint) ([]model.Review, error)

	CreatePhoto(ctx context.Context, photo *model.Photo) error
	ListPhotos(ctx context.Context, trailID uint) ([]model.Photo, error)
}

type trailRepository struct {
	db *gorm.DB
}

func NewTrailRepository(db *gorm.DB) TrailRepository {
	return &trailRepository{db: db}
}

// --- Trail ---

func (r *trailRepository) List(ctx context.Context, limit int) ([]model.Trail, error) {
	var trails []model.Trail
	err := r.db.WithContext(ctx).Order("id asc").Limit(limit).Find(&trails).Error
	return trails, err
}

func (r *trailRepository) ListWithCoordinates(ctx context.Context) ([]model.Trail, error) {
	var trails []model.Trail
	err := r.db.WithContext(ctx).
		Where("lat IS NOT NULL AND lon IS NOT NULL").
		Order("id asc").
		Find(&trails).Error
	return trails, err
}

// Search 名称不区分大小写的子串匹配，postgres 与 sqlite 通用
func (r *trailRepository) Search(ctx context.Context, query string, limit int) ([]model.Trail, error) {
	var trails []model.Trail
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("id asc").
		Limit(limit).
		Find(&trails).Error
	return trails, err
}

func (r *trailRepository) ListByPark(ctx context.Context, parkID uint) ([]model.Trail, error) {
	var trails []model.Trail
	err := r.db.WithContext(ctx).Where("park_id = ?", parkID).Order("name asc").Find(&trails).Error
	return trails, err
}

func (r *trailRepository) GetByID(ctx context.Context, id uint) (*model.Trail, error) {
	var trail model.Trail
	if err := r.db.WithContext(ctx).First(&trail, id).Error; err != nil {
		return nil, err
	}
	return &trail, nil
}

func (r *trailRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Trail{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *trailRepository) Create(ctx context.Context, trail *model.Trail) error {
	return r.db.WithContext(ctx).Create(trail).Error
}

// Delete 删除步道，评价/笔记/收藏等由外键级联删除
func (r *trailRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Trail{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --- Review ---

// AddReview 在同一事务内锁定步道、插入评价并重算评分，返回更新后的步道
func (r *trailRepository) AddReview(ctx context.Context, review *model.Review) (*model.Trail, error) {
	var trail model.Trail
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := LockTrails(tx, review.TrailID)
		if err != nil {
			return err
		}
		if locked != nil && len(locked) == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		if err := RecomputeRating(tx, review.TrailID); err != nil {
			return err
		}
		return tx.First(&trail, review.TrailID).Error
	})
	if err != nil {
		return nil, err
	}
	return &trail, nil
}

// LockTrails 在调用方事务内按 id 升序对步道行加 FOR UPDATE 锁，返回锁住的 id。
// 同一步道的评价写入与评分重算因此串行执行，重算总能看到其他已提交的评价。
// SQLite 写事务本身互斥，不加锁并返回 nil
func LockTrails(tx *gorm.DB, ids ...uint) ([]uint, error) {
	if len(ids) == 0 || tx.Dialector.Name() != "postgres" {
		return nil, nil
	}
	locked := []uint{}
	err := tx.Model(&model.Trail{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &locked).Error
	if err != nil {
		return nil, err
	}
	return locked, nil
}

// RecomputeRating 以当前全部评价重算平均分（保留两位小数）和评价数，需在调用方事务内执行
func RecomputeRating(tx *gorm.DB, trailID uint) error {
	var agg struct {
		Avg sql.NullFloat64
		Cnt int64
	}
	err := tx.Model(&model.Review{}).
		Select("CAST(AVG(rating) AS DOUBLE PRECISION) AS avg, COUNT(*) AS cnt").
		Where("trail_id = ?", trailID).
		Scan(&agg).Error
	if err != nil {
		return err
	}

	avg := 0.0
	if agg.Avg.Valid {
		avg = math.Round(agg.Avg.Float64*100) / 100
	}

	return tx.Model(&model.Trail{}).Where("id = ?", trailID).Updates(map[string]interface{}{
		"avg_rating":    avg,
		"ratings_count": agg.Cnt,
	}).Error
}

func (r *trailRepository) ListReviews(ctx context.Context, trailID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Where("trail_id = ?", trailID).
		Order("created_at desc, id desc").
		Find(&reviews).Error
	return reviews, err
}

// --- Photo ---

func (r *trailRepository) CreatePhoto(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *trailRepository) ListPhotos(ctx context.Context, trailID uint) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.WithContext(ctx).
		Where("trail_id = ?", trailID).
		Order("created_at desc, id desc").
		Find(&photos).Error
	return photos, err
}
