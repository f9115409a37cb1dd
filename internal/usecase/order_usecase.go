package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// OrderUsecase は作成済み注文の参照とステータス遷移。
type OrderUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	notifier Notifier
	log      *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	notifier Notifier,
	log *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, notifier: notifier, log: log}
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	AddressID       *int64            `json:"address_id,omitempty"`
	Status          string            `json:"status"`
	FulfillmentType string            `json:"fulfillment_type"`
	PaymentMethod   string            `json:"payment_method"`
	TotalAmount     int64             `json:"total_amount"`
	TotalWeightKG   float64           `json:"total_weight_kg"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

type UpdateOrderStatusInput struct {
	Status string
}

// 受け付ける6ステータス。遷移図どおりかはここでは強制していない。
func isKnownStatus(s string) bool {
	switch model.OrderStatus(s) {
	case model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusOutForDelivery,
		model.OrderStatusReadyForPickup,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled:
		return true
	}
	return false
}

// UpdateStatus は注文ステータスを更新し、通知を非同期で投げる。
// ステータス変更が確定事実、通知は参考情報：通知失敗はログだけで
// 更新は成功のまま返す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in UpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := strings.TrimSpace(in.Status)
	if !isKnownStatus(newStatus) {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var (
		updated model.Order
		items   []model.OrderItem
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatus(newStatus)); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//通知用に更新後の姿を読み直す
		updated = o
		updated.Status = model.OrderStatus(newStatus)

		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.dispatchNotification(updated, items)
	return nil
}

// dispatchNotification は呼び出し元をブロックしない。
// リクエストのctxには乗せない（レスポンス後も送り切るため）。
func (u *OrderUsecase) dispatchNotification(order model.Order, items []model.OrderItem) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := u.users.FindByID(ctx, order.UserID)
		if err != nil {
			u.log.Warn("order status notification skipped", "order_id", order.ID, "error", err)
			return
		}

		n := OrderStatusNotification{
			EventID:       uuid.NewString(),
			OrderID:       order.ID,
			Status:        string(order.Status),
			CustomerName:  user.Name,
			CustomerEmail: user.Email,
			TotalAmount:   order.TotalAmount,
			ItemCount:     len(items),
			OccurredAt:    time.Now(),
		}

		if err := u.notifier.NotifyOrderStatus(ctx, n); err != nil {
			u.log.Warn("order status notification failed", "order_id", order.ID, "error", err)
		}
	}()
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 管理者向け一覧
func (u *OrderUsecase) ListAll(ctx context.Context, page int, limit int) ([]OrderOutput, error) {
	if page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAll(ctx, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.PriceAtPurchase,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		AddressID:       o.AddressID,
		Status:          string(o.Status),
		FulfillmentType: string(o.FulfillmentType),
		PaymentMethod:   string(o.PaymentMethod),
		TotalAmount:     o.TotalAmount,
		TotalWeightKG:   o.TotalWeightKG,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
