package favorite

import (
	"trailblazer/internal/domain/favorite/handler"
	"trailblazer/internal/domain/favorite/repository"
	"trailblazer/internal/domain/favorite/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/registry"
)

// FavoriteModule 收藏模块
type FavoriteModule struct{}

func init() {
	registry.Register(&FavoriteModule{})
}

func (m *FavoriteModule) Name() string {
	return "favorite"
}

func (m *FavoriteModule) Priority() int {
	return 20
}

func (m *FavoriteModule) Init(ctx *registry.ModuleContext) error {
	favService := service.NewFavoriteService(
		repository.NewFavoriteRepository(ctx.DB),
		trailRepository.NewTrailRepository(ctx.DB),
		ctx.Metrics,
	)
	h := handler.NewFavoriteHandler(favService)

	ctx.Router.POST("/trails/:id/favorite", ctx.Auth, h.ToggleFavorite)
	ctx.Router.GET("/me/favorites", ctx.Auth, h.ListFavorites)

	return nil
}
