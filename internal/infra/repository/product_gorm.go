package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", productID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
