package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// PaymentUsecase は作成済み注文に対してクライアント向け決済トークンを発行する。
// トークンは導出物で、失敗しても注文は残る（再発行できる）。
type PaymentUsecase struct {
	users   repo.UserRepository
	gateway PaymentGateway
}

func NewPaymentUsecase(users repo.UserRepository, gateway PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{users: users, gateway: gateway}
}

func (u *PaymentUsecase) IssueToken(ctx context.Context, order model.Order) (string, error) {
	//参照整合性があるので基本届かないが、明示的に守る
	user, err := u.users.FindByID(ctx, order.UserID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := u.gateway.CreateTransaction(ctx, GatewayTransactionRequest{
		OrderID:   order.ID,
		Reference: uuid.NewString(), //試行ごとに振り直す
		Amount:    order.TotalAmount,
		Customer: GatewayCustomer{
			Name:  user.Name,
			Email: user.Email,
		},
	})
	if err != nil || token == "" {
		return "", NewHTTPError(http.StatusBadGateway, "payment gateway error")
	}

	return token, nil
}
