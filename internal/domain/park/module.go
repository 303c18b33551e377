package park

import (
	"trailblazer/internal/domain/park/handler"
	"trailblazer/internal/domain/park/repository"
	"trailblazer/internal/domain/park/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/nps"
	"trailblazer/internal/pkg/registry"
)

// ParkModule 公园模块及 NPS 导入
type ParkModule struct{}

func init() {
	registry.Register(&ParkModule{})
}

func (m *ParkModule) Name() string {
	return "park"
}

func (m *ParkModule) Priority() int {
	return 5
}

func (m *ParkModule) Init(ctx *registry.ModuleContext) error {
	parkRepo := repository.NewParkRepository(ctx.DB)
	trailRepo := trailRepository.NewTrailRepository(ctx.DB)
	client := nps.NewClient(ctx.Config.NPS)
	h := handler.NewParkHandler(service.NewParkService(parkRepo, trailRepo, client, ctx.Metrics))

	g := ctx.Router.Group("/parks")
	{
		g.GET("", h.ListParks)
		g.GET("/:id", h.GetPark)
		g.GET("/:id/trails", h.ListParkTrails)
	}

	admin := ctx.Router.Group("/admin/nps", ctx.Auth, ctx.Admin)
	{
		admin.POST("/refresh", h.RefreshFromNPS)
	}

	return nil
}
