package handler

import (
	"net/http"
	"strconv"

	"trailblazer/internal/domain/trail/model"
	"trailblazer/internal/domain/trail/service"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type TrailHandler struct {
	service  service.TrailService
	maxBytes int64
}

func NewTrailHandler(s service.TrailService, maxUploadBytes int64) *TrailHandler {
	return &TrailHandler{service: s, maxBytes: maxUploadBytes}
}

// CreateTrailInput 创建步道输入
type CreateTrailInput struct {
	Name           string   `json:"name" binding:"required,min=1,max=200"`
	Difficulty     string   `json:"difficulty" binding:"max=50"`
	LengthKm       *float64 `json:"length_km" binding:"omitempty,gte=0"`
	ElevationGainM *float64 `json:"elevation_gain_m" binding:"omitempty,gte=0"`
	Lat            *float64 `json:"lat" binding:"omitempty,gte=-90,lte=90"`
	Lon            *float64 `json:"lon" binding:"omitempty,gte=-180,lte=180"`
	Accessible     bool     `json:"accessible"`
	HasWaterfall   bool     `json:"has_waterfall"`
	HasViewpoint   bool     `json:"has_viewpoint"`
	ParkID         *uint    `json:"park_id"`
}

// ReviewInput 评价输入，rating 范围由 service 校验
type ReviewInput struct {
	Rating int     `json:"rating"`
	Body   *string `json:"body"`
}

// ListTrails 步道列表 / 附近步道
// @Summary 步道列表，可按坐标筛选附近
// @Tags Trail
// @Produce json
// @Param near query string false "lat,lon"
// @Param radius query number false "半径(km)，默认 50"
// @Success 200 {array} model.Trail
// @Router /trails [get]
func (h *TrailHandler) ListTrails(c *gin.Context) {
	radius, err := utils.ParseOptionalFloat(c, "radius")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	trails, err := h.service.ListTrails(c.Request.Context(), c.Query("near"), radius)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trails)
}

// SearchTrails 按名称搜索
// @Summary 按名称搜索步道
// @Tags Trail
// @Produce json
// @Param q query string true "名称关键字"
// @Param near query string false "lat,lon，按距离排序"
// @Param limit query int false "默认 50，最大 100"
// @Success 200 {array} model.Trail
// @Router /trails/search [get]
func (h *TrailHandler) SearchTrails(c *gin.Context) {
	q, ok := c.GetQuery("q")
	if !ok {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "q is required")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid limit")
			return
		}
		if v == 0 {
			v = -1 // 显式传 0 视为越界
		}
		limit = v
	}

	trails, err := h.service.SearchTrails(c.Request.Context(), q, c.Query("near"), limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trails)
}

// GetTrail 步道详情
// @Summary 步道详情
// @Tags Trail
// @Param id path int true "Trail ID"
// @Success 200 {object} model.Trail
// @Router /trails/{id} [get]
func (h *TrailHandler) GetTrail(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	trail, err := h.service.GetTrail(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, trail)
}

// CreateTrail 创建社区步道
// @Summary 创建步道
// @Tags Trail
// @Accept json
// @Param input body CreateTrailInput true "步道信息"
// @Success 201 {object} model.Trail
// @Router /trails [post]
func (h *TrailHandler) CreateTrail(c *gin.Context) {
	var input CreateTrailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	trail, err := h.service.CreateTrail(c.Request.Context(), &model.Trail{
		ParkID:         input.ParkID,
		Name:           input.Name,
		Difficulty:     input.Difficulty,
		LengthKm:       input.LengthKm,
		ElevationGainM: input.ElevationGainM,
		Accessible:     input.Accessible,
		HasWaterfall:   input.HasWaterfall,
		HasViewpoint:   input.HasViewpoint,
		Lat:            input.Lat,
		Lon:            input.Lon,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, trail)
}

// DeleteTrail 删除步道 (管理员)
// @Summary 删除步道，级联删除评价、照片、收藏与离线标记
// @Tags Trail
// @Security BearerAuth
// @Param id path int true "Trail ID"
// @Success 200 {object} map[string]bool
// @Router /trails/{id} [delete]
func (h *TrailHandler) DeleteTrail(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := h.service.DeleteTrail(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddReview 发表评价并更新步道评分
// @Summary 发表评价
// @Tags Trail
// @Accept json
// @Param id path int true "Trail ID"
// @Param input body ReviewInput true "评价"
// @Success 201 {object} service.ReviewResult
// @Router /trails/{id}/reviews [post]
func (h *TrailHandler) AddReview(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	res, err := h.service.AddReview(c.Request.Context(), utils.CurrentUserID(c), id, input.Rating, input.Body)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, res)
}

// ListReviews 评价列表（最新在前）
// @Summary 步道评价列表
// @Tags Trail
// @Produce json
// @Param id path int true "Trail ID"
// @Success 200 {array} model.Review
// @Router /trails/{id}/reviews [get]
func (h *TrailHandler) ListReviews(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, reviews)
}

// UploadPhoto 上传步道照片 (multipart: file, caption)
// @Summary 上传步道照片
// @Tags Trail
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Trail ID"
// @Param file formData file true "照片"
// @Param caption formData string false "说明"
// @Success 201 {object} model.Photo
// @Router /trails/{id}/photos [post]
func (h *TrailHandler) UploadPhoto(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "file is required")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.ErrInvalidParam, "file too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	defer src.Close()

	var caption *string
	if v := c.PostForm("caption"); v != "" {
		caption = &v
	}

	photo, err := h.service.UploadPhoto(c.Request.Context(), utils.CurrentUserID(c), id, service.PhotoUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Reader:      src,
		Caption:     caption,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, photo)
}

// ListPhotos 照片列表（最新在前）
// @Summary 步道照片列表
// @Tags Trail
// @Produce json
// @Param id path int true "Trail ID"
// @Success 200 {array} model.Photo
// @Router /trails/{id}/photos [get]
func (h *TrailHandler) ListPhotos(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	photos, err := h.service.ListPhotos(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, photos)
}
