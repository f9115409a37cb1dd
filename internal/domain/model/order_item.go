package model

import "time"

// 注文明細。PriceAtPurchaseは確定時点の商品価格の凍結コピーで、
// 以後商品価格が変わっても読み直さない。
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"order_id"`
	ProductID           int64     `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	PriceAtPurchase     int64     `gorm:"not null" json:"price_at_purchase"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
