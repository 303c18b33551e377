package model

import baseModel "trailblazer/pkg/model"

// Note 用户对步道的私人笔记，只对作者可见
type Note struct {
	baseModel.BaseModel
	TrailID  uint   `json:"trail_id"`
	UserID   uint   `json:"user_id"`
	Text     string `json:"text"`
	IsPinned bool   `json:"is_pinned"`
}
