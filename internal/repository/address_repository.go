package repository

import (
	"context"

	"app/internal/domain/model"
)

type AddressRepository interface {
	FindByID(ctx context.Context, addressID int64) (model.Address, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	Create(ctx context.Context, a model.Address) (model.Address, error)
	DeleteByID(ctx context.Context, addressID int64) error

	//defaultの付け替えに使う2操作（同一Txで呼ぶ）
	ClearDefault(ctx context.Context, userID int64) error
	MarkDefault(ctx context.Context, addressID int64) error
}
