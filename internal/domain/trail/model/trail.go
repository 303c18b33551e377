package model

import baseModel "trailblazer/pkg/model"

// Trail 步道，avg_rating / ratings_count 为评价的缓存聚合值
type Trail struct {
	baseModel.BaseModel
	ParkID         *uint    `json:"park_id"`
	Name           string   `json:"name"`
	Difficulty     string   `gorm:"default:moderate" json:"difficulty"` // easy, moderate, hard
	LengthKm       *float64 `json:"length_km"`
	ElevationGainM *float64 `json:"elevation_gain_m"`
	Accessible     bool     `json:"accessible"`
	HasWaterfall   bool     `json:"has_waterfall"`
	HasViewpoint   bool     `json:"has_viewpoint"`
	Lat            *float64 `json:"lat"`
	Lon            *float64 `json:"lon"`
	AvgRating      float64  `json:"avg_rating"`
	RatingsCount   int      `json:"ratings_count"`

	// 附近/搜索结果中的距离，不落库
	DistanceKm *float64 `gorm:"-" json:"distance_km,omitempty"`
}

// HasCoordinates 经纬度是否齐全
func (t *Trail) HasCoordinates() bool {
	return t.Lat != nil && t.Lon != nil
}

// Review 评价，同一用户可对同一步道多次评价
type Review struct {
	baseModel.CreatedOnly
	TrailID uint    `json:"trail_id"`
	UserID  uint    `json:"user_id"`
	Rating  int     `json:"rating"` // 1-5
	Body    *string `json:"body"`
}

// Photo 步道照片，FilePath 为相对存储路径
type Photo struct {
	baseModel.CreatedOnly
	TrailID  uint    `json:"trail_id"`
	UserID   uint    `json:"user_id"`
	FilePath string  `json:"file_path"`
	Caption  *string `json:"caption"`

	URL string `gorm:"-" json:"url"`
}
