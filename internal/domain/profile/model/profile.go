package model

import "time"

// Profile 与用户一对一，以 user_id 为主键，首次访问时创建
type Profile struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	AvatarURL *string   `json:"avatar_url"`
	Bio       *string   `json:"bio"`
	HomeState *string   `json:"home_state"`
	HomeLat   *float64  `json:"home_lat"`
	HomeLon   *float64  `json:"home_lon"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ProfileView 对外输出，合并用户的 display_name
type ProfileView struct {
	UserID      uint     `json:"user_id"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url"`
	Bio         *string  `json:"bio"`
	HomeState   *string  `json:"home_state"`
	HomeLat     *float64 `json:"home_lat"`
	HomeLon     *float64 `json:"home_lon"`
}

// View 组装输出
func (p *Profile) View(displayName string) *ProfileView {
	return &ProfileView{
		UserID:      p.UserID,
		DisplayName: displayName,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		HomeState:   p.HomeState,
		HomeLat:     p.HomeLat,
		HomeLon:     p.HomeLon,
	}
}
