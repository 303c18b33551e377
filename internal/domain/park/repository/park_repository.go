package repository

import (
	"context"
	"errors"

	"trailblazer/internal/domain/park/model"

	"gorm.io/gorm"
)

type ParkRepository interface {
	List(ctx context.Context, state string) ([]model.Park, error)
	GetByID(ctx context.Context, id uint) (*model.Park, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FindForImport(ctx context.Context, npsID, name, state string) (*model.Park, error)
	Create(ctx context.Context, park *model.Park) error
	Update(ctx context.Context, park *model.Park) error
}

type parkRepository struct {
	db *gorm.DB
}

func NewParkRepository(db *gorm.DB) ParkRepository {
	return &parkRepository{db: db}
}

// List state 为空时返回全部
func (r *parkRepository) List(ctx context.Context, state string) ([]model.Park, error) {
	var parks []model.Park
	q := r.db.WithContext(ctx).Model(&model.Park{})
	if state != "" {
		q = q.Where("state = ?", state)
	}
	err := q.Order("name asc").Find(&parks).Error
	return parks, err
}

func (r *parkRepository) GetByID(ctx context.Context, id uint) (*model.Park, error) {
	var park model.Park
	if err := r.db.WithContext(ctx).First(&park, id).Error; err != nil {
		return nil, err
	}
	return &park, nil
}

func (r *parkRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Park{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindForImport 按 nps_id 或 (name, state) 匹配已有公园，未找到返回 nil
func (r *parkRepository) FindForImport(ctx context.Context, npsID, name, state string) (*model.Park, error) {
	q := r.db.WithContext(ctx).Model(&model.Park{})
	if npsID != "" {
		q = q.Where("nps_id = ?", npsID).Or("name = ? AND state = ?", name, state)
	} else {
		q = q.Where("name = ? AND state = ?", name, state)
	}

	var park model.Park
	if err := q.Order("id asc").First(&park).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &park, nil
}

func (r *parkRepository) Create(ctx context.Context, park *model.Park) error {
	return r.db.WithContext(ctx).Create(park).Error
}

func (r *parkRepository) Update(ctx context.Context, park *model.Park) error {
	return r.db.WithContext(ctx).Save(park).Error
}
