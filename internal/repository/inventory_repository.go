package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ stock -= qty, sale += qty を1文で行う。
	// falseは在庫不足（行は変更されない）。
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
