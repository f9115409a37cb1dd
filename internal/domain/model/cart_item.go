package model

import "time"

// カートの明細。(cart_id, product_id)で一意、同じ商品は数量加算。
// 価格は持たない：カート合計は常に現在の商品行から導出する。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID int64     `gorm:"not null;index;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
