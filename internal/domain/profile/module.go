package profile

import (
	"trailblazer/internal/domain/profile/handler"
	"trailblazer/internal/domain/profile/repository"
	"trailblazer/internal/domain/profile/service"
	userRepository "trailblazer/internal/domain/user/repository"
	"trailblazer/internal/pkg/registry"
)

// ProfileModule 用户资料模块
type ProfileModule struct{}

func init() {
	registry.Register(&ProfileModule{})
}

func (m *ProfileModule) Name() string {
	return "profile"
}

func (m *ProfileModule) Priority() int {
	return 20
}

func (m *ProfileModule) Init(ctx *registry.ModuleContext) error {
	h := handler.NewProfileHandler(service.NewProfileService(
		repository.NewProfileRepository(ctx.DB),
		userRepository.NewUserRepository(ctx.DB),
	))

	g := ctx.Router.Group("/profiles")
	{
		g.GET("/me", ctx.Auth, h.GetMyProfile)
		g.PATCH("/me", ctx.Auth, h.UpdateMyProfile)
		g.GET("/:id", h.GetProfile)
	}
	return nil
}
