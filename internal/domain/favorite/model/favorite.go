package model

import baseModel "trailblazer/pkg/model"

// Favorite (user_id, trail_id) 唯一
type Favorite struct {
	baseModel.CreatedOnly
	UserID  uint `json:"user_id"`
	TrailID uint `json:"trail_id"`
}

// ToggleResult 翻转后的收藏状态
type ToggleResult struct {
	State       string `json:"state"`
	IsFavorited bool   `json:"is_favorited"`
	Message     string `json:"message"`
}
