package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"trailblazer/internal/domain/post/model"
	"trailblazer/internal/domain/post/repository"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/utils"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// TrailChecker 判断步道是否存在
type TrailChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// PostInput 发布输入
type PostInput struct {
	TrailID *uint
	Title   *string
	Body    string
}

// PostUpdate 部分更新：未设置的字段保持不变，trail_id 与 title 可显式置空，body 不可为空
type PostUpdate struct {
	TrailID utils.Optional[uint]
	Title   utils.Optional[string]
	Body    *string
}

// ListQuery 列表查询参数
type ListQuery struct {
	TrailID  *uint
	AuthorID *uint
	utils.Pagination
}

type PostService interface {
	CreatePost(ctx context.Context, userID uint, in PostInput) (*model.Post, error)
	ListPosts(ctx context.Context, q ListQuery) ([]model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	UpdatePost(ctx context.Context, userID, postID uint, in PostUpdate) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID uint) error
}

type postService struct {
	repo   repository.PostRepository
	trails TrailChecker
}

func NewPostService(repo repository.PostRepository, trails TrailChecker) PostService {
	return &postService{repo: repo, trails: trails}
}

func (s *postService) CreatePost(ctx context.Context, userID uint, in PostInput) (*model.Post, error) {
	if strings.TrimSpace(in.Body) == "" {
		return nil, apperr.Invalid("body is required")
	}
	if err := s.ensureTrail(ctx, in.TrailID); err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:  userID,
		TrailID: in.TrailID,
		Title:   in.Title,
		Body:    in.Body,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return s.repo.GetPostByID(ctx, post.ID)
}

func (s *postService) ListPosts(ctx context.Context, q ListQuery) ([]model.Post, error) {
	if err := q.Normalize(DefaultPageLimit, MaxPageLimit); err != nil {
		return nil, err
	}
	return s.repo.GetPosts(ctx, repository.PostFilter{
		TrailID:  q.TrailID,
		AuthorID: q.AuthorID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
}

func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.repo.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post")
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID uint, in PostUpdate) (*model.Post, error) {
	post, err := s.owned(ctx, userID, postID, "edit")
	if err != nil {
		return nil, err
	}

	if in.Body != nil {
		if strings.TrimSpace(*in.Body) == "" {
			return nil, apperr.Invalid("body must not be empty")
		}
		post.Body = *in.Body
	}
	if v := in.Title.Value; v != nil && utf8.RuneCountInString(*v) > 200 {
		return nil, apperr.Invalid("title must be at most 200 characters")
	}
	in.Title.Apply(&post.Title)
	if in.TrailID.Value != nil {
		if err := s.ensureTrail(ctx, in.TrailID.Value); err != nil {
			return nil, err
		}
	}
	in.TrailID.Apply(&post.TrailID)

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.owned(ctx, userID, postID, "delete"); err != nil {
		return err
	}
	return s.repo.DeletePost(ctx, postID)
}

// owned 先判断存在，再判断是否为作者
func (s *postService) owned(ctx context.Context, userID, postID uint, action string) (*model.Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, apperr.Forbidden("not allowed to " + action + " this post")
	}
	return post, nil
}

func (s *postService) ensureTrail(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.trails.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("trail")
	}
	return nil
}
