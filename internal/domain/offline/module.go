package offline

import (
	"trailblazer/internal/domain/offline/handler"
	"trailblazer/internal/domain/offline/repository"
	"trailblazer/internal/domain/offline/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/registry"
)

// OfflineModule 离线保存模块
type OfflineModule struct{}

func init() {
	registry.Register(&OfflineModule{})
}

func (m *OfflineModule) Name() string {
	return "offline"
}

func (m *OfflineModule) Priority() int {
	return 20
}

func (m *OfflineModule) Init(ctx *registry.ModuleContext) error {
	h := handler.NewOfflineHandler(service.NewOfflineService(
		repository.NewOfflineRepository(ctx.DB),
		trailRepository.NewTrailRepository(ctx.DB),
		ctx.Metrics,
	))

	g := ctx.Router.Group("/offline/trails", ctx.Auth)
	{
		g.POST("/:id", h.ToggleOffline)
		g.GET("", h.ListOffline)
	}
	return nil
}
