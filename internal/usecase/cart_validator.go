package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 確定直前にカート明細を商品の今の状態と突き合わせる。
// 最初に落ちた明細でエラーを返す（一覧レポートにはしない）。
type CartValidator struct {
	productRepo repo.ProductRepository
}

func NewCartValidator(productRepo repo.ProductRepository) *CartValidator {
	return &CartValidator{productRepo: productRepo}
}

// 検証済みの1行。Priceはこの検証で読んだ今の価格で、
// 注文明細のPriceAtPurchaseはここから凍結する。
type ValidatedLine struct {
	ProductID int64
	Name      string
	Price     int64
	Quantity  int64
}

// ValidateLines は各明細について商品を読み直し、
// 消滅・在庫切れ・在庫不足・価格変更を順にチェックする。
// itemsのProductは読み込み時点の価格を持っている前提（Snapshot経由）。
func (v *CartValidator) ValidateLines(ctx context.Context, items []model.CartItem) ([]ValidatedLine, error) {
	lines := make([]ValidatedLine, 0, len(items))

	for _, it := range items {
		live, err := v.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Product in your cart no longer exists (id %d). Please remove it and try again.", it.ProductID))
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if live.Stock == 0 {
			return nil, NewHTTPError(http.StatusConflict,
				fmt.Sprintf("%s is out of stock", live.Name))
		}
		if live.Stock < it.Quantity {
			return nil, NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", live.Name, live.Stock, it.Quantity))
		}

		//読み込み時点の価格と比較（カート読み込み→確定の間の価格改定を弾く）
		if it.Product != nil && it.Product.Price != live.Price {
			return nil, NewHTTPError(http.StatusConflict,
				fmt.Sprintf("Price for %s has changed. Please refresh your cart and try again.", live.Name))
		}

		lines = append(lines, ValidatedLine{
			ProductID: live.ID,
			Name:      live.Name,
			Price:     live.Price,
			Quantity:  it.Quantity,
		})
	}

	return lines, nil
}
