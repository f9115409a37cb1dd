package usecase

import (
	"context"
	"errors"
	"time"
)

// 外部コラボレーターとの約束。実装はinfra側（テストはモック）。

// 地域IDキャッシュ。Getのmissはエラーではなく(_, false, nil)。
// Setの失敗は呼び出し側でログして握りつぶす（リクエストは失敗させない）。
type RegionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// 地域名→IDのカスケード検索API
type RegionAPI interface {
	FindProvinceID(ctx context.Context, name string) (string, error)
	FindCityID(ctx context.Context, provinceID string, name string) (string, error)
	FindDistrictID(ctx context.Context, cityID string, name string) (string, error)
	FindSubdistrictID(ctx context.Context, districtID string, name string) (string, error)
}

// RegionAPIが名前を解決できなかったとき
var ErrRegionNotFound = errors.New("region not found")

// 住所文字列→緯度経度
type Geocoder interface {
	Geocode(ctx context.Context, fullAddress string) (lat float64, lng float64, err error)
}

type GatewayCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// 決済ゲートウェイへのトランザクション作成リクエスト。
// OrderIDが業務上のキー、Referenceは試行ごとに振り直す。
type GatewayTransactionRequest struct {
	OrderID   int64           `json:"order_id"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Customer  GatewayCustomer `json:"customer"`
}

type PaymentGateway interface {
	//クライアント向け決済トークンを発行する
	CreateTransaction(ctx context.Context, req GatewayTransactionRequest) (token string, err error)
}

// 注文ステータス変更の通知イベント
type OrderStatusNotification struct {
	EventID       string    `json:"event_id"`
	OrderID       int64     `json:"order_id"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	TotalAmount   int64     `json:"total_amount"`
	ItemCount     int       `json:"item_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// fire-and-forget。エラーは呼び出し側がログするだけで伝播しない。
type Notifier interface {
	NotifyOrderStatus(ctx context.Context, n OrderStatusNotification) error
}
