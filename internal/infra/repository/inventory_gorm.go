package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。saleの加算も同じUPDATEで行う。
// WHERE stock >= qty が負在庫を防ぐ本体（検証はあくまで事前の目安）。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Updates(map[string]interface{}{
			"stock": gorm.Expr("stock - ?", qty),
			"sale":  gorm.Expr("sale + ?", qty),
		})

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
