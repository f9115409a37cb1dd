package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddressUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
	geocoder  Geocoder
	regions   *RegionResolver
	log       *slog.Logger
}

func NewAddressUsecase(
	tx repo.TransactionManager,
	addresses repo.AddressRepository,
	geocoder Geocoder,
	regions *RegionResolver,
	log *slog.Logger,
) *AddressUsecase {
	return &AddressUsecase{tx: tx, addresses: addresses, geocoder: geocoder, regions: regions, log: log}
}

type AddressCreateInput struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	Province      string `json:"province"`
	City          string `json:"city"`
	District      string `json:"district"`
	Subdistrict   string `json:"subdistrict"`
	PostalCode    string `json:"postal_code"`
	Detail        string `json:"detail"`
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

// Create は住所を保存する。緯度経度はここでジオコーディングして確定し、
// 地域IDキャッシュの温めはレスポンスを待たせず裏で行う。
func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressCreateInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.RecipientName == "" || in.Province == "" || in.City == "" || in.District == "" || in.Subdistrict == "" {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, "missing required address fields")
	}

	full := strings.Join([]string{in.Detail, in.Subdistrict, in.District, in.City, in.Province}, ", ")
	lat, lng, err := u.geocoder.Geocode(ctx, full)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusBadGateway, "geocoding failed")
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:        userID,
		RecipientName: in.RecipientName,
		Phone:         in.Phone,
		Province:      in.Province,
		City:          in.City,
		District:      in.District,
		Subdistrict:   in.Subdistrict,
		PostalCode:    in.PostalCode,
		Detail:        in.Detail,
		Latitude:      lat,
		Longitude:     lng,
		IsDefault:     false,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//配送料計算が読むキャッシュを先に温めておく。失敗はログだけ。
	go func() {
		wctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if _, err := u.regions.Resolve(wctx, created.Province, created.City, created.District, created.Subdistrict); err != nil {
			u.log.Warn("region cache warm failed", "address_id", created.ID, "error", err)
		}
	}()

	return created, nil
}

// SetDefault は同じTxで既存defaultを落としてから付ける
func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	addr, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Addresses().ClearDefault(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Addresses().MarkDefault(ctx, addressID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if addressID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	addr, err := u.addresses.FindByID(ctx, addressID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.addresses.DeleteByID(ctx, addressID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
