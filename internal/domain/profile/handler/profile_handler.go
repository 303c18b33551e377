package handler

import (
	"net/http"

	"trailblazer/internal/domain/profile/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// UpdateProfileInput 资料更新输入，字段传 null 表示清空
type UpdateProfileInput struct {
	AvatarURL utils.Optional[string]  `json:"avatar_url" swaggertype:"string"`
	Bio       utils.Optional[string]  `json:"bio" swaggertype:"string"`
	HomeState utils.Optional[string]  `json:"home_state" swaggertype:"string"`
	HomeLat   utils.Optional[float64] `json:"home_lat" swaggertype:"number"`
	HomeLon   utils.Optional[float64] `json:"home_lon" swaggertype:"number"`
}

// GetMyProfile 我的资料
// @Summary 我的资料
// @Tags Profile
// @Security BearerAuth
// @Success 200 {object} model.ProfileView
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	view, err := h.service.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateMyProfile 修改我的资料
// @Summary 修改我的资料
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Param input body UpdateProfileInput true "资料"
// @Success 200 {object} model.ProfileView
// @Router /profiles/me [patch]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	view, err := h.service.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), service.ProfileUpdate{
		AvatarURL: input.AvatarURL,
		Bio:       input.Bio,
		HomeState: input.HomeState,
		HomeLat:   input.HomeLat,
		HomeLon:   input.HomeLon,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, view)
}

// GetProfile 公开资料
// @Summary 查看用户资料
// @Tags Profile
// @Param id path int true "User ID"
// @Success 200 {object} model.ProfileView
// @Router /profiles/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	view, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, view)
}
