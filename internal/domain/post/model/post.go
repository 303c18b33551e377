package model

import baseModel "trailblazer/pkg/model"

// Post 社区动态，trail_id 可为空；步道删除后置空
type Post struct {
	baseModel.BaseModel
	UserID  uint    `json:"user_id"`
	TrailID *uint   `json:"trail_id"`
	Title   *string `json:"title"`
	Body    string  `json:"body"`

	// 作者昵称，查询时关联 users 表得到
	DisplayName string `gorm:"->" json:"display_name"`
}
