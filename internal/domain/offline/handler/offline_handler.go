package handler

import (
	"trailblazer/internal/domain/offline/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OfflineHandler struct {
	service service.OfflineService
}

func NewOfflineHandler(s service.OfflineService) *OfflineHandler {
	return &OfflineHandler{service: s}
}

// ToggleOffline 离线保存/取消
// @Summary 切换步道离线保存
// @Tags Offline
// @Security BearerAuth
// @Param id path int true "Trail ID"
// @Success 200 {object} model.StatusResult
// @Router /offline/trails/{id} [post]
func (h *OfflineHandler) ToggleOffline(c *gin.Context) {
	trailID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	res, err := h.service.Toggle(c.Request.Context(), utils.CurrentUserID(c), trailID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, res)
}

// ListOffline 离线步道列表
func (h *OfflineHandler) ListOffline(c *gin.Context) {
	trails, err := h.service.ListOffline(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trails)
}
