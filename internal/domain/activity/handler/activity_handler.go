package handler

import (
	"net/http"
	"time"

	"trailblazer/internal/domain/activity/repository"
	"trailblazer/internal/domain/activity/service"
	"trailblazer/internal/pkg/apperr"
	"trailblazer/pkg/response"
	"trailblazer/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	service service.ActivityService
}

func NewActivityHandler(s service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: s}
}

// LogActivityInput 记录活动输入，date 为 RFC3339
type LogActivityInput struct {
	Date           *time.Time `json:"date"`
	DistanceKm     *float64   `json:"distance_km"`
	DurationMin    *int       `json:"duration_min"`
	ElevationGainM *float64   `json:"elevation_gain_m"`
}

// LogActivity 记录一次活动
// @Summary 记录徒步活动
// @Tags Activity
// @Security BearerAuth
// @Accept json
// @Param id path int true "Trail ID"
// @Param input body LogActivityInput true "活动"
// @Success 201 {object} model.Activity
// @Router /trails/{id}/activities [post]
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	trailID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.HandleError(c, err)
		return
	}

	var input LogActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	activity, err := h.service.LogActivity(c.Request.Context(), utils.CurrentUserID(c), trailID, service.LogInput{
		Date:           input.Date,
		DistanceKm:     input.DistanceKm,
		DurationMin:    input.DurationMin,
		ElevationGainM: input.ElevationGainM,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Created(c, activity)
}

// ListMyActivities 我的活动
// @Summary 我的活动列表
// @Tags Activity
// @Security BearerAuth
// @Param trail_id query int false "Trail ID"
// @Param date_from query string false "RFC3339 或 YYYY-MM-DD"
// @Param date_to query string false "RFC3339 或 YYYY-MM-DD"
// @Success 200 {array} model.Activity
// @Router /activities/me [get]
func (h *ActivityHandler) ListMyActivities(c *gin.Context) {
	var f repository.ActivityFilter
	var err error
	if f.TrailID, err = utils.ParseOptionalUint(c, "trail_id"); err != nil {
		response.HandleError(c, err)
		return
	}
	if f.DateFrom, err = parseTime(c, "date_from"); err != nil {
		response.HandleError(c, err)
		return
	}
	if f.DateTo, err = parseTime(c, "date_to"); err != nil {
		response.HandleError(c, err)
		return
	}

	activities, err := h.service.ListActivities(c.Request.Context(), utils.CurrentUserID(c), f)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, activities)
}

// GetMyProgress 累计数据
// @Summary 我的累计数据
// @Tags Activity
// @Security BearerAuth
// @Success 200 {object} model.Progress
// @Router /progress/me [get]
func (h *ActivityHandler) GetMyProgress(c *gin.Context) {
	progress, err := h.service.GetProgress(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, progress)
}

func parseTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperr.Invalid("invalid %s", name)
}
