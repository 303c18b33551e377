package utils

import (
	"strconv"

	"trailblazer/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Pagination limit/offset 分页参数
type Pagination struct {
	Limit  int `json:"limit" form:"limit"`
	Offset int `json:"offset" form:"offset"`
}

// Normalize 校验分页参数，limit 为 0 时使用默认值
func (p *Pagination) Normalize(defaultLimit, maxLimit int) error {
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		return apperr.Invalid("limit must be between 1 and %d", maxLimit)
	}
	if p.Offset < 0 {
		return apperr.Invalid("offset must be >= 0")
	}
	return nil
}

// ParseIDParam 解析路径中的正整数ID
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid("invalid %s", name)
	}
	return uint(id), nil
}

// ParseOptionalUint 解析可选的正整数查询参数
func ParseOptionalUint(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, apperr.Invalid("invalid %s", name)
	}
	id := uint(v)
	return &id, nil
}

// ParseOptionalFloat 解析可选的浮点查询参数
func ParseOptionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Invalid("invalid %s", name)
	}
	return &v, nil
}

// CurrentUserID 从上下文获取当前用户ID
func CurrentUserID(c *gin.Context) uint {
	val, _ := c.Get("userID")
	if id, ok := val.(uint); ok {
		return id
	}
	return 0
}
