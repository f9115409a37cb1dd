package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

func (r *AddressGormRepository) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	var list []model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default desc, id desc").
		Find(&list).Error
	if err != nil {
		return []model.Address{}, err
	}
	return list, nil
}

func (r *AddressGormRepository) Create(ctx context.Context, a model.Address) (model.Address, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) DeleteByID(ctx context.Context, addressID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Address{}, addressID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ユーザーの既存defaultを全て落とす（付け替えと同じTxで呼ぶ）
func (r *AddressGormRepository) ClearDefault(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func (r *AddressGormRepository) MarkDefault(ctx context.Context, addressID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ?", addressID).
		Update("is_default", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
