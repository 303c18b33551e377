package post

import (
	"trailblazer/internal/domain/post/handler"
	"trailblazer/internal/domain/post/repository"
	"trailblazer/internal/domain/post/service"
	trailRepository "trailblazer/internal/domain/trail/repository"
	"trailblazer/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 社区动态模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 20
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	postService := service.NewPostService(postRepo, trailRepository.NewTrailRepository(ctx.DB))
	postHandler := handler.NewPostHandler(postService)

	// 2. 路由注册
	setupRoutes(ctx.Router, postHandler, ctx.Auth)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler, auth gin.HandlerFunc) {
	g := r.Group("/posts")

	// 公开浏览
	g.GET("", h.ListPosts)
	g.GET("/:id", h.GetPost)

	// 需要登录
	authed := g.Group("", auth)
	{
		authed.POST("", h.CreatePost)
		authed.PATCH("/:id", h.UpdatePost)
		authed.DELETE("/:id", h.DeletePost)
	}
}
