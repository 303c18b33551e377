package model

import baseModel "trailblazer/pkg/model"

// OfflineDownload 标记为离线可用的步道，(user_id, trail_id) 唯一
type OfflineDownload struct {
	baseModel.CreatedOnly
	UserID  uint `json:"user_id"`
	TrailID uint `json:"trail_id"`
}

// StatusResult 翻转后的离线状态
type StatusResult struct {
	State     string `json:"state"`
	IsOffline bool   `json:"is_offline"`
	Message   string `json:"message"`
}
