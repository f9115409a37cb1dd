package model

import (
	"time"

	"gorm.io/gorm"
)

// Stockは0未満にならない（減算は条件付きUPDATEで守る）。
// Saleは累計販売数で、在庫減算と同じ書き込みで加算する。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64          `gorm:"not null;index" json:"category_id"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"type:varchar(512)" json:"image_url"`
	Price       int64          `gorm:"not null" json:"price"`
	WeightKG    float64        `gorm:"not null;column:weight_kg" json:"weight_kg"`
	Stock       int64          `gorm:"not null" json:"stock"`
	Sale        int64          `gorm:"not null;default:0" json:"sale"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
