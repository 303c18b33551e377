package repository

import (
	"context"

	"trailblazer/internal/domain/post/model"

	"gorm.io/gorm"
)

// PostFilter 列表筛选与分页
type PostFilter struct {
	TrailID  *uint
	AuthorID *uint
	Limit    int
	Offset   int
}

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id uint) (*model.Post, error)
	GetPosts(ctx context.Context, f PostFilter) ([]model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAuthor 关联作者昵称
func (r *postRepository) withAuthor(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, users.display_name").
		Joins("JOIN users ON users.id = posts.user_id")
}

func (r *postRepository) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetPostByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.withAuthor(ctx).Where("posts.id = ?", id).Take(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts 按创建时间倒序
func (r *postRepository) GetPosts(ctx context.Context, f PostFilter) ([]model.Post, error) {
	query := r.withAuthor(ctx)
	if f.TrailID != nil {
		query = query.Where("posts.trail_id = ?", *f.TrailID)
	}
	if f.AuthorID != nil {
		query = query.Where("posts.user_id = ?", *f.AuthorID)
	}

	var posts []model.Post
	err := query.Order("posts.created_at desc, posts.id desc").Offset(f.Offset).Limit(f.Limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Model(post).Select("trail_id", "title", "body", "updated_at").Updates(post).Error
}

func (r *postRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}
