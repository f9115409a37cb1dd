package model

import "time"

// 1ユーザーにつきカートは1つ。登録時に作られ、注文確定では
// 明細（cart_items）だけを消してカート行は残す。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
