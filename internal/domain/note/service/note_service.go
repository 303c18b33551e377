package service

import (
	"context"
	"errors"
	"strings"

	"trailblazer/internal/domain/note/model"
	"trailblazer/internal/domain/note/repository"
	"trailblazer/internal/pkg/apperr"

	"gorm.io/gorm"
)

// TrailChecker 判断步道是否存在
type TrailChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// NoteUpdate 部分更新，nil 字段保持不变
type NoteUpdate struct {
	Text     *string
	IsPinned *bool
}

type NoteService interface {
	ListNotes(ctx context.Context, userID, trailID uint) ([]model.Note, error)
	CreateNote(ctx context.Context, userID, trailID uint, text string, pinned bool) (*model.Note, error)
	UpdateNote(ctx context.Context, userID, noteID uint, in NoteUpdate) (*model.Note, error)
	DeleteNote(ctx context.Context, userID, noteID uint) error
}

type noteService struct {
	repo   repository.NoteRepository
	trails TrailChecker
}

func NewNoteService(repo repository.NoteRepository, trails TrailChecker) NoteService {
	return &noteService{repo: repo, trails: trails}
}

func (s *noteService) ListNotes(ctx context.Context, userID, trailID uint) ([]model.Note, error) {
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}
	return s.repo.ListForTrail(ctx, trailID, userID)
}

func (s *noteService) CreateNote(ctx context.Context, userID, trailID uint, text string, pinned bool) (*model.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Invalid("text is required")
	}
	if err := s.ensureTrail(ctx, trailID); err != nil {
		return nil, err
	}

	note := &model.Note{TrailID: trailID, UserID: userID, Text: text, IsPinned: pinned}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uint, in NoteUpdate) (*model.Note, error) {
	note, err := s.owned(ctx, userID, noteID, "edit")
	if err != nil {
		return nil, err
	}

	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return nil, apperr.Invalid("text must not be empty")
		}
		note.Text = *in.Text
	}
	if in.IsPinned != nil {
		note.IsPinned = *in.IsPinned
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uint) error {
	if _, err := s.owned(ctx, userID, noteID, "delete"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, noteID)
}

// owned 先判断存在，再判断归属
func (s *noteService) owned(ctx context.Context, userID, noteID uint, action string) (*model.Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("note")
		}
		return nil, err
	}
	if note.UserID != userID {
		return nil, apperr.Forbidden("not allowed to " + action + " this note")
	}
	return note, nil
}

func (s *noteService) ensureTrail(ctx context.Context, id uint) error {
	ok, err := s.trails.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("trail")
	}
	return nil
}
