package repository

import (
	"context"

	"trailblazer/internal/domain/note/model"

	"gorm.io/gorm"
)

type NoteRepository interface {
	ListForTrail(ctx context.Context, trailID, userID uint) ([]model.Note, error)
	GetByID(ctx context.Context, id uint) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

// ListForTrail 置顶优先，其次按创建时间倒序
func (r *noteRepository) ListForTrail(ctx context.Context, trailID, userID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.WithContext(ctx).
		Where("trail_id = ? AND user_id = ?", trailID, userID).
		Order("is_pinned desc, created_at desc, id desc").
		Find(&notes).Error
	return notes, err
}

func (r *noteRepository) GetByID(ctx context.Context, id uint) (*model.Note, error) {
	var note model.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Model(note).Select("text", "is_pinned", "updated_at").Updates(note).Error
}

func (r *noteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, id).Error
}
