package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	//Product（Category込み）をpreloadして一覧取得
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)

	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)

	//同一商品は数量加算
	UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error

	DeleteByID(ctx context.Context, cartItemID int64) error

	//カートの明細を全削除。0件でもエラーにしない（冪等）。
	ClearByCartID(ctx context.Context, cartID int64) error

	//cartItemがそのuserのカートに属しているか
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
