package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func cartLine(productID int64, price int64, qty int64) model.CartItem {
	return model.CartItem{
		ProductID: productID,
		Product:   &model.Product{ID: productID, Price: price},
		Quantity:  qty,
	}
}

func TestCartValidator_ProductGone(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{}, repo.ErrNotFound)

	v := NewCartValidator(products)

	_, err := v.ValidateLines(context.Background(), []model.CartItem{cartLine(101, 10000, 1)})
	assertErrContains(t, err, "no longer exists")

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestCartValidator_OutOfStock(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(
		model.Product{ID: 101, Name: "Gaming Mouse", Price: 10000, Stock: 0}, nil)

	v := NewCartValidator(products)

	_, err := v.ValidateLines(context.Background(), []model.CartItem{cartLine(101, 10000, 1)})
	assertErrContains(t, err, "Gaming Mouse is out of stock")
}

func TestCartValidator_InsufficientStock(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(
		model.Product{ID: 101, Name: "Gaming Mouse", Price: 10000, Stock: 1}, nil)

	v := NewCartValidator(products)

	_, err := v.ValidateLines(context.Background(), []model.CartItem{cartLine(101, 10000, 3)})
	assertErrContains(t, err, "Insufficient stock for Gaming Mouse. Available: 1, Requested: 3")
}

func TestCartValidator_PriceChangedSinceRead(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(
		model.Product{ID: 101, Name: "Gaming Mouse", Price: 12000, Stock: 5}, nil)

	v := NewCartValidator(products)

	// カート読み込み時点では10000だった
	_, err := v.ValidateLines(context.Background(), []model.CartItem{cartLine(101, 10000, 1)})
	assertErrContains(t, err, "Price for Gaming Mouse has changed")
}

func TestCartValidator_Success_FreezesCurrentPrice(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(
		model.Product{ID: 101, Name: "Gaming Mouse", Price: 10000, Stock: 5}, nil)
	products.On("FindByID", mock.Anything, int64(102)).Return(
		model.Product{ID: 102, Name: "Desk Mat", Price: 4000, Stock: 2}, nil)

	v := NewCartValidator(products)

	lines, err := v.ValidateLines(context.Background(), []model.CartItem{
		cartLine(101, 10000, 2),
		cartLine(102, 4000, 1),
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, ValidatedLine{ProductID: 101, Name: "Gaming Mouse", Price: 10000, Quantity: 2}, lines[0])
	assert.Equal(t, ValidatedLine{ProductID: 102, Name: "Desk Mat", Price: 4000, Quantity: 1}, lines[1])
}

func TestCartValidator_StopsAtFirstFailure(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(101)).Return(
		model.Product{ID: 101, Name: "Gaming Mouse", Price: 10000, Stock: 0}, nil)

	v := NewCartValidator(products)

	_, err := v.ValidateLines(context.Background(), []model.CartItem{
		cartLine(101, 10000, 1),
		cartLine(102, 4000, 1),
	})
	assertErrContains(t, err, "out of stock")

	products.AssertNotCalled(t, "FindByID", mock.Anything, int64(102))
}
