package usecase

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

const earthRadiusKM = 6371.0

// 配送料計算の定数。値は設定から入れる（config.Shipping()参照）。
type ShippingConfig struct {
	OriginLat     float64 // 倉庫（発送元）の緯度
	OriginLng     float64 // 倉庫（発送元）の経度
	RatePerKM     int64   // 1kmあたりの基本料金
	MarkupPercent int64   // 基本料金への固定上乗せ（%）
	MinFee        int64   // 最低料金
	MaxDistanceKM float64 // 配達可能距離の上限
	MaxWeightKG   float64 // 受け付ける総重量の上限
}

// ShippingUsecase は距離×重量の配送料計算。
// (距離, 重量, 定数)の純関数で、読み込みは住所とカートの2つだけ。
type ShippingUsecase struct {
	addresses repo.AddressRepository
	carts     *CartUsecase
	cache     RegionCache
	cfg       ShippingConfig
}

func NewShippingUsecase(
	addresses repo.AddressRepository,
	carts *CartUsecase,
	cache RegionCache,
	cfg ShippingConfig,
) *ShippingUsecase {
	return &ShippingUsecase{addresses: addresses, carts: carts, cache: cache, cfg: cfg}
}

type ShippingQuote struct {
	Fee           int64   `json:"fee"`
	DistanceKM    float64 `json:"distance_km"`
	TotalWeightKG float64 `json:"total_weight_kg"`
	RegionID      string  `json:"region_id"`
}

// CalculateFee は配送先住所への配送料を見積もる。
func (u *ShippingUsecase) CalculateFee(ctx context.Context, addressID int64) (ShippingQuote, error) {
	if addressID <= 0 {
		return ShippingQuote{}, NewHTTPError(http.StatusBadRequest, "invalid address_id")
	}

	addr, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return ShippingQuote{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return ShippingQuote{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	snap, err := u.carts.Snapshot(ctx, addr.UserID)
	if err != nil {
		return ShippingQuote{}, err
	}
	if len(snap.Items) == 0 {
		return ShippingQuote{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	if snap.TotalWeightKG > u.cfg.MaxWeightKG {
		return ShippingQuote{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Total weight %.1f kg exceeds the %.0f kg shipping limit", snap.TotalWeightKG, u.cfg.MaxWeightKG))
	}

	// 地域IDはキャッシュから読むだけ。住所作成時に温められている前提で、
	// 無ければネットワークには行かずConflictで返す。
	regionID, ok, err := u.cache.Get(ctx, RegionCacheKey(addr.District))
	if err != nil || !ok {
		return ShippingQuote{}, NewHTTPError(http.StatusConflict,
			fmt.Sprintf("Shipping region for %q is not resolved yet. Please re-save the address.", addr.District))
	}

	dist := haversineKM(u.cfg.OriginLat, u.cfg.OriginLng, addr.Latitude, addr.Longitude)
	if dist > u.cfg.MaxDistanceKM {
		return ShippingQuote{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Delivery distance %.1f km exceeds the %.0f km service limit", dist, u.cfg.MaxDistanceKM))
	}

	fee := u.computeFee(dist, snap.TotalWeightKG)

	return ShippingQuote{
		Fee:           fee,
		DistanceKM:    dist,
		TotalWeightKG: snap.TotalWeightKG,
		RegionID:      regionID,
	}, nil
}

// computeFee は距離×単価に固定マークアップ、最低料金、重量加算を適用し、
// 通貨の最小単位へ切り上げる。
func (u *ShippingUsecase) computeFee(distanceKM float64, weightKG float64) int64 {
	hundred := decimal.NewFromInt(100)

	base := decimal.NewFromFloat(distanceKM).Mul(decimal.NewFromInt(u.cfg.RatePerKM))
	fee := base.Mul(hundred.Add(decimal.NewFromInt(u.cfg.MarkupPercent))).Div(hundred)

	if min := decimal.NewFromInt(u.cfg.MinFee); fee.LessThan(min) {
		fee = min
	}

	//重量加算は最上位の1段だけ（累積しない）
	var surcharge int64
	switch {
	case weightKG > 20:
		surcharge = 30
	case weightKG > 10:
		surcharge = 20
	case weightKG > 5:
		surcharge = 10
	}
	if surcharge > 0 {
		fee = fee.Mul(hundred.Add(decimal.NewFromInt(surcharge))).Div(hundred)
	}

	return fee.Ceil().IntPart()
}

// RegionCacheKey は地域キャッシュのキー（小文字・トリム済みの区名）
func RegionCacheKey(district string) string {
	return strings.ToLower(strings.TrimSpace(district))
}

// haversineKM は2点間の測地距離（km）
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}
