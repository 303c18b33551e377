package database

import (
	"context"

	"gorm.io/gorm"
)

// ToggleState 关联行翻转后的状态
type ToggleState string

const (
	StateAdded   ToggleState = "added"
	StateRemoved ToggleState = "removed"
)

// TogglePair 翻转 (user_id, trail_id) 关联行：存在则删除，不存在则插入。
// 并发插入撞上唯一约束时视为对方已添加，返回 added。
func TogglePair[T any](ctx context.Context, db *gorm.DB, userID, trailID uint, newRow func() *T) (ToggleState, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND trail_id = ?", userID, trailID).
		Delete(new(T))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected > 0 {
		return StateRemoved, nil
	}

	if err := db.WithContext(ctx).Create(newRow()).Error; err != nil {
		if IsUniqueViolation(err) {
			return StateAdded, nil
		}
		return "", err
	}
	return StateAdded, nil
}
