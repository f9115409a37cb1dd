package repository

import (
	"context"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestInventoryGormRepository_DecreaseStockIfEnough_DecrementsAndCountsSale(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewInventoryGormRepository(db)

	cat := model.Category{Name: "kitchen"}
	assert.NoError(t, db.WithContext(ctx).Create(&cat).Error)
	p := model.Product{CategoryID: cat.ID, Name: "Ceramic Mug", Price: 10000, Stock: 5}
	assert.NoError(t, db.WithContext(ctx).Create(&p).Error)

	ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	var got model.Product
	assert.NoError(t, db.WithContext(ctx).First(&got, p.ID).Error)
	assert.Equal(t, int64(2), got.Stock)
	assert.Equal(t, int64(3), got.Sale)
}

func TestInventoryGormRepository_DecreaseStockIfEnough_RefusesWhenShort(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewInventoryGormRepository(db)

	cat := model.Category{Name: "kitchen"}
	assert.NoError(t, db.WithContext(ctx).Create(&cat).Error)
	p := model.Product{CategoryID: cat.ID, Name: "Ceramic Mug", Price: 10000, Stock: 2}
	assert.NoError(t, db.WithContext(ctx).Create(&p).Error)

	ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 3)
	assert.NoError(t, err)
	assert.False(t, ok)

	// 行は一切変更されない
	var got model.Product
	assert.NoError(t, db.WithContext(ctx).First(&got, p.ID).Error)
	assert.Equal(t, int64(2), got.Stock)
	assert.Equal(t, int64(0), got.Sale)
}

func TestInventoryGormRepository_DecreaseStockIfEnough_ExactStockSucceeds(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	r := NewInventoryGormRepository(db)

	cat := model.Category{Name: "kitchen"}
	assert.NoError(t, db.WithContext(ctx).Create(&cat).Error)
	p := model.Product{CategoryID: cat.ID, Name: "Ceramic Mug", Price: 10000, Stock: 3}
	assert.NoError(t, db.WithContext(ctx).Create(&p).Error)

	ok, err := r.DecreaseStockIfEnough(ctx, p.ID, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	var got model.Product
	assert.NoError(t, db.WithContext(ctx).First(&got, p.ID).Error)
	assert.Equal(t, int64(0), got.Stock)
}
