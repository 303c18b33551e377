package model

import baseModel "trailblazer/pkg/model"

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型，email 按原样区分大小写
type User struct {
	baseModel.BaseModel
	Email        string `gorm:"unique" json:"email"`
	PasswordHash string `json:"-"` // 密码哈希不返回给前端
	DisplayName  string `json:"display_name"`
	Role         string `gorm:"default:user" json:"role"`
}
