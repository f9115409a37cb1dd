package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartGormRepository は CartRepository と CartItemRepository の両方を実装する。
type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得（登録時に作成済みの前提）
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) Create(ctx context.Context, userID int64) (model.Cart, error) {
	cart := model.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(&cart).Error; err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート明細を一覧取得（商品とカテゴリを一緒に読む）
func (r *CartGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// 明細を取得
func (r *CartGormRepository) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("id = ?", cartItemID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 同一商品は数量加算
func (r *CartGormRepository) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if err == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", item.Quantity+addQty)

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newItem := model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  addQty,
		}
		return tx.Create(&newItem).Error
	})
}

// 明細の数量を更新
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 指定カートの明細を全削除。0件でも成功（2回目は何も起きない）。
func (r *CartGormRepository) ClearByCartID(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}

//cartItemが、そのuserのカートに属しているかを判定

func (r *CartGormRepository) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("join carts on carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", cartItemID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
