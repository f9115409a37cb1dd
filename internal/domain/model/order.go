package model

import "time"

type OrderStatus string

// PENDING → PROCESSING → {OUT_FOR_DELIVERY | READY_FOR_PICKUP} → COMPLETED。
// CANCELLEDは終端以外のどこからでも入る。遷移の合法性はサーバー側では
// 強制していない（既知のギャップ）。
const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "DELIVERY"
	FulfillmentPickup   FulfillmentType = "PICKUP"
)

type PaymentMethod string

const (
	PaymentMethodOnline  PaymentMethod = "ONLINE"
	PaymentMethodInstore PaymentMethod = "INSTORE"
)

// 注文。作成時に確定した金額・重量・受け取り方法は不変で、
// 以後動かせるのはStatusだけ。
type Order struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64           `gorm:"not null;index" json:"user_id"`
	AddressID       *int64          `gorm:"index" json:"address_id,omitempty"` // PICKUPはnull
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	FulfillmentType FulfillmentType `gorm:"type:varchar(20);not null" json:"fulfillment_type"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`
	TotalAmount     int64           `gorm:"not null" json:"total_amount"`
	TotalWeightKG   float64         `gorm:"not null;column:total_weight_kg" json:"total_weight_kg"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
