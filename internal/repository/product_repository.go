package repository

import (
	"context"

	"app/internal/domain/model"
)

type ProductRepository interface {
	//カテゴリ込みで1件取得
	FindByID(ctx context.Context, productID int64) (model.Product, error)
}
