package handler

import (
	"net/http"

	"trailblazer/internal/domain/post/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// CreatePostInput 发布动态输入
type CreatePostInput struct {
	TrailID *uint   `json:"trail_id"`
	Title   *string `json:"title" binding:"omitempty,max=200"`
	Body    string  `json:"body" binding:"required,max=10000"`
}

// UpdatePostInput 修改动态输入，trail_id/title 传 null 表示清空
type UpdatePostInput struct {
	TrailID utils.Optional[uint]   `json:"trail_id" swaggertype:"integer"`
	Title   utils.Optional[string] `json:"title" swaggertype:"string"`
	Body    *string                `json:"body" binding:"omitempty,max=10000"`
}

// CreatePost 发布动态
// @Summary 发布社区动态
// @Tags Post
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body CreatePostInput true "动态内容"
// @Success 201 {object} model.Post
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), utils.CurrentUserID(c), service.PostInput{
		TrailID: input.TrailID,
		Title:   input.Title,
		Body:    input.Body,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, post)
}

// ListPosts 动态列表
// @Summary 社区动态列表
// @Tags Post
// @Param trail_id query int false "Trail ID"
// @Param author_id query int false "User ID"
// @Param limit query int false "默认 50，最大 200"
// @Param offset query int false "Offset"
// @Success 200 {array} model.Post
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var q service.ListQuery
	if err := c.ShouldBindQuery(&q.Pagination); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	var err error
	if q.TrailID, err = utils.ParseOptionalUint(c, "trail_id"); err != nil {
		response.HandleError(c, err)
		return
	}
	if q.AuthorID, err = utils.ParseOptionalUint(c, "author_id"); err != nil {
		response.HandleError(c, err)
		return
	}

	posts, err := h.service.ListPosts(c.Request.Context(), q)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 动态详情
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 修改自己的动态
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var input UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), utils.CurrentUserID(c), id, service.PostUpdate{
		TrailID: input.TrailID,
		Title:   input.Title,
		Body:    input.Body,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除自己的动态
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
