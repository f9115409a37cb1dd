package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//ユーザーのカートを取得（登録時に作られている前提。無ければErrNotFound）
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	//ユーザー登録時のカート作成
	Create(ctx context.Context, userID int64) (model.Cart, error)
}
