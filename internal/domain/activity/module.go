package activity

import (
	"trailblazer/internal/domain/activity/handler"
	"trailblazer/internal/domain/activity/repository"
	"trailblazer/internal/domain/activity/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/registry"
)

// ActivityModule 活动记录与累计数据
type ActivityModule struct{}

func init() {
	registry.Register(&ActivityModule{})
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) Priority() int {
	return 20
}

func (m *ActivityModule) Init(ctx *registry.ModuleContext) error {
	activityService := service.NewActivityService(
		repository.NewActivityRepository(ctx.DB),
		repository.NewProgressRepository(ctx.Sqlx),
		trailRepository.NewTrailRepository(ctx.DB),
	)
	h := handler.NewActivityHandler(activityService)

	ctx.Router.POST("/trails/:id/activities", ctx.Auth, h.LogActivity)
	ctx.Router.GET("/activities/me", ctx.Auth, h.ListMyActivities)
	ctx.Router.GET("/progress/me", ctx.Auth, h.GetMyProgress)

	return nil
}
