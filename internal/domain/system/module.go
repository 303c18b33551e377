package system

import (
	"trailblazer/internal/domain/system/handler"
	"trailblazer/internal/pkg/registry"
)

// SystemModule 健康检查等运维路由
type SystemModule struct{}

func init() {
	registry.Register(&SystemModule{})
}

func (m *SystemModule) Name() string {
	return "system"
}

func (m *SystemModule) Priority() int {
	return 100 // 最后初始化
}

func (m *SystemModule) Init(ctx *registry.ModuleContext) error {
	h := handler.NewHealthHandler(ctx.DB, ctx.Redis)
	ctx.Router.GET("/health", h.Health)
	return nil
}
