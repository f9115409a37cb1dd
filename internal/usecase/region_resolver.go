package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// RegionResolver は州→市→区→町を順にIDへ解決する。
// 解決結果（町ID）は区名キーでキャッシュし、配送料計算はそのキャッシュだけを読む。
type RegionResolver struct {
	api   RegionAPI
	cache RegionCache
	ttl   time.Duration
	log   *slog.Logger
}

func NewRegionResolver(api RegionAPI, cache RegionCache, ttl time.Duration, log *slog.Logger) *RegionResolver {
	return &RegionResolver{api: api, cache: cache, ttl: ttl, log: log}
}

// Resolve は名前のカスケード検索。キャッシュヒットならAPIには行かない。
func (r *RegionResolver) Resolve(ctx context.Context, province, city, district, subdistrict string) (string, error) {
	key := RegionCacheKey(district)

	// キャッシュはあくまで目安：読めなくてもネットワーク解決に進む
	if id, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return id, nil
	}

	provinceID, err := r.api.FindProvinceID(ctx, province)
	if err != nil {
		return "", r.asHTTPError(err, province)
	}
	cityID, err := r.api.FindCityID(ctx, provinceID, city)
	if err != nil {
		return "", r.asHTTPError(err, city)
	}
	districtID, err := r.api.FindDistrictID(ctx, cityID, district)
	if err != nil {
		return "", r.asHTTPError(err, district)
	}
	subdistrictID, err := r.api.FindSubdistrictID(ctx, districtID, subdistrict)
	if err != nil {
		return "", r.asHTTPError(err, subdistrict)
	}

	// 書き込み失敗でリクエストは落とさない
	if err := r.cache.Set(ctx, key, subdistrictID, r.ttl); err != nil {
		r.log.Warn("region cache write failed", "key", key, "error", err)
	}

	return subdistrictID, nil
}

func (r *RegionResolver) asHTTPError(err error, name string) error {
	if errors.Is(err, ErrRegionNotFound) {
		return NewHTTPError(http.StatusConflict, "unknown region: "+name)
	}
	return NewHTTPError(http.StatusBadGateway, "region lookup failed")
}
