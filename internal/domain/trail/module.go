package trail

import (
	parkRepository "trailblazer/internal/domain/park/repository"
	"trailblazer/internal/domain/trail/handler"
	"trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/domain/trail/service"
	"trailblazer/internal/pkg/registry"
	"trailblazer/internal/pkg/uploader"
)

// TrailModule 步道模块：列表/附近/搜索、评价、照片
type TrailModule struct{}

func init() {
	registry.Register(&TrailModule{})
}

func (m *TrailModule) Name() string {
	return "trail"
}

func (m *TrailModule) Priority() int {
	return 10
}

func (m *TrailModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	up, err := uploader.New(ctx.Config)
	if err != nil {
		return err
	}

	trailRepo := repository.NewTrailRepository(ctx.DB)
	parkRepo := parkRepository.NewParkRepository(ctx.DB)
	trailService := service.NewTrailService(trailRepo, parkRepo, up, ctx.Metrics)
	if ctx.Cache != nil {
		trailService = service.NewCachedTrailService(trailService, ctx.Cache, ctx.Metrics)
	}
	h := handler.NewTrailHandler(trailService, ctx.Config.Upload.MaxBytes)

	// 本地存储时由本服务提供静态文件
	if local, ok := up.(*uploader.LocalUploader); ok {
		ctx.Router.Static("/media", local.Root())
	}

	// 2. 路由注册
	g := ctx.Router.Group("/trails")
	{
		g.GET("", h.ListTrails)
		g.GET("/search", h.SearchTrails)
		g.GET("/:id", h.GetTrail)
		g.GET("/:id/reviews", h.ListReviews)
		g.GET("/:id/photos", h.ListPhotos)
	}

	auth := ctx.Router.Group("/trails", ctx.Auth)
	{
		auth.POST("", h.CreateTrail)
		auth.POST("/:id/reviews", h.AddReview)
		auth.POST("/:id/photos", h.UploadPhoto)
	}

	admin := ctx.Router.Group("/trails", ctx.Auth, ctx.Admin)
	{
		admin.DELETE("/:id", h.DeleteTrail)
	}

	return nil
}
