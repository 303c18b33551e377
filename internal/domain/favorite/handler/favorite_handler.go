package handler

import (
	"trailblazer/internal/domain/favorite/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	service service.FavoriteService
}

func NewFavoriteHandler(s service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: s}
}

// ToggleFavorite 收藏/取消收藏
// @Summary 收藏或取消收藏步道
// @Tags Favorite
// @Security BearerAuth
// @Param id path int true "Trail ID"
// @Success 200 {object} model.ToggleResult
// @Router /trails/{id}/favorite [post]
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
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

// ListFavorites 我的收藏
// @Summary 我收藏的步道
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {array} model.Trail
// @Router /me/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	trails, err := h.service.ListFavorites(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trails)
}
