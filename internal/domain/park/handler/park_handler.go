package handler

import (
	"trailblazer/internal/domain/park/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ParkHandler struct {
	service service.ParkService
}

func NewParkHandler(s service.ParkService) *ParkHandler {
	return &ParkHandler{service: s}
}

// ListParks 公园列表
// @Summary 公园列表
// @Tags Park
// @Param state query string false "州代码，如 NY"
// @Success 200 {array} model.Park
// @Router /parks [get]
func (h *ParkHandler) ListParks(c *gin.Context) {
	parks, err := h.service.ListParks(c.Request.Context(), c.Query("state"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, parks)
}

func (h *ParkHandler) GetPark(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	park, err := h.service.GetPark(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, park)
}

func (h *ParkHandler) ListParkTrails(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	trails, err := h.service.ListParkTrails(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trails)
}

// RefreshFromNPS 从 NPS 导入指定州的公园 (管理员)
// @Summary 导入 NPS 公园
// @Tags Admin
// @Param state_code query string true "州代码"
// @Success 200 {object} model.ImportResult
// @Failure 502 {object} response.Response
// @Router /admin/nps/refresh [post]
func (h *ParkHandler) RefreshFromNPS(c *gin.Context) {
	result, err := h.service.ImportByState(c.Request.Context(), c.Query("state_code"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, result)
}
