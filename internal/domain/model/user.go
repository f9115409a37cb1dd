package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 決済ゲートウェイのcustomer情報（name/email）はここから読む
type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Role        Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
