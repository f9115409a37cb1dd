package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
