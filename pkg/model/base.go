package model

import "time"

// BaseModel 基础模型，自增整型主键，不做软删除（级联依赖物理删除）
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatedOnly 只记录创建时间的模型（关联表、照片等）
type CreatedOnly struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
