package model

import "time"

// 配送先住所。緯度経度は作成時にジオコーディングして保存する。
// is_defaultはユーザーごとに最大1件（新しいdefault設定と同じTxで他を落とす）。
type Address struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	RecipientName string    `gorm:"type:varchar(255);not null" json:"recipient_name"`
	Phone         string    `gorm:"type:varchar(30)" json:"phone"`

	//州・市・区・町（地域ID解決に使う表記そのまま）
	Province    string `gorm:"type:varchar(100);not null" json:"province"`
	City        string `gorm:"type:varchar(100);not null" json:"city"`
	District    string `gorm:"type:varchar(100);not null" json:"district"`
	Subdistrict string `gorm:"type:varchar(100);not null" json:"subdistrict"`
	PostalCode  string `gorm:"type:varchar(20)" json:"postal_code"`

	//番地など
	Detail string `gorm:"type:varchar(255)" json:"detail"`

	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
