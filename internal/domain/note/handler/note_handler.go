package handler

import (
	"net/http"

	"trailblazer/internal/domain/note/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	service service.NoteService
}

func NewNoteHandler(s service.NoteService) *NoteHandler {
	return &NoteHandler{service: s}
}

// CreateNoteInput 新建笔记输入
type CreateNoteInput struct {
	Text     string `json:"text" binding:"required,max=5000"`
	IsPinned bool   `json:"is_pinned"`
}

// UpdateNoteInput 部分更新输入
type UpdateNoteInput struct {
	Text     *string `json:"text" binding:"omitempty,max=5000"`
	IsPinned *bool   `json:"is_pinned"`
}

// ListNotes 当前用户在该步道的笔记
// @Summary 步道笔记列表（仅自己可见）
// @Tags Note
// @Security BearerAuth
// @Param id path int true "Trail ID"
// @Success 200 {array} model.Note
// @Router /trails/{id}/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	trailID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	notes, err := h.service.ListNotes(c.Request.Context(), utils.CurrentUserID(c), trailID)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, notes)
}

// CreateNote 新建笔记
// @Summary 新建笔记
// @Tags Note
// @Security BearerAuth
// @Accept json
// @Param id path int true "Trail ID"
// @Param input body CreateNoteInput true "笔记"
// @Success 201 {object} model.Note
// @Router /trails/{id}/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	trailID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	note, err := h.service.CreateNote(c.Request.Context(), utils.CurrentUserID(c), trailID, input.Text, input.IsPinned)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, note)
}

// UpdateNote 修改笔记
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	noteID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var input UpdateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	note, err := h.service.UpdateNote(c.Request.Context(), utils.CurrentUserID(c), noteID, service.NoteUpdate{
		Text:     input.Text,
		IsPinned: input.IsPinned,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, note)
}

// DeleteNote 删除笔记
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	noteID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.service.DeleteNote(c.Request.Context(), utils.CurrentUserID(c), noteID); err != nil {
		response.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
