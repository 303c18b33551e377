package model

import baseModel "trailblazer/pkg/model"

// Park 公园，NPSID 为空表示社区添加
type Park struct {
	baseModel.BaseModel
	NPSID *string  `gorm:"column:nps_id" json:"nps_id"`
	Name  string   `json:"name"`
	State *string  `json:"state"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
}

// ImportResult NPS 导入统计
type ImportResult struct {
	State    string `json:"state"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Total    int    `json:"total"`
}
