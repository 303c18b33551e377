package note

import (
	"trailblazer/internal/domain/note/handler"
	"trailblazer/internal/domain/note/repository"
	"trailblazer/internal/domain/note/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/registry"
)

// NoteModule 私人笔记模块
type NoteModule struct{}

func init() {
	registry.Register(&NoteModule{})
}

func (m *NoteModule) Name() string {
	return "note"
}

func (m *NoteModule) Priority() int {
	return 20
}

func (m *NoteModule) Init(ctx *registry.ModuleContext) error {
	noteService := service.NewNoteService(
		repository.NewNoteRepository(ctx.DB),
		trailRepository.NewTrailRepository(ctx.DB),
	)
	h := handler.NewNoteHandler(noteService)

	trails := ctx.Router.Group("/trails", ctx.Auth)
	{
		trails.GET("/:id/notes", h.ListNotes)
		trails.POST("/:id/notes", h.CreateNote)
	}

	notes := ctx.Router.Group("/notes", ctx.Auth)
	{
		notes.PATCH("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)
	}

	return nil
}
