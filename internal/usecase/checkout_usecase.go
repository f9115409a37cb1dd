package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CheckoutUsecase はカート→注文の状態遷移。
// 注文行・注文明細・在庫減算・カートクリアを1トランザクションで行う。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	carts     *CartUsecase
	validator *CartValidator
	addresses repo.AddressRepository
	payments  *PaymentUsecase
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	carts *CartUsecase,
	validator *CartValidator,
	addresses repo.AddressRepository,
	payments *PaymentUsecase,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:        tx,
		carts:     carts,
		validator: validator,
		addresses: addresses,
		payments:  payments,
	}
}

type CheckoutInput struct {
	FulfillmentType string
	AddressID       int64
	//クライアントが見た合計（商品小計＋見積もり済み配送料）。
	//記録する金額はこれだが、サーバー計算の商品小計未満は弾く。
	TotalCheckoutPrice int64
}

type CheckoutOutput struct {
	Order        OrderOutput `json:"order"`
	PaymentToken string      `json:"payment_token,omitempty"`
}

// Checkout はカートを注文に確定する。
//
// 書き込み前に落とす：空カート、DELIVERYの住所不備、明細検証。
// Tx内：注文作成→明細一括作成（価格凍結）→在庫条件付き減算→カートクリア。
// どこかで失敗したらa〜dは全部rollback。
// Tx成功後、DELIVERYだけ決済トークンを発行する。ここで失敗しても
// 注文はcommit済みのまま（決済は後から再試行できる）。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var fulfillment model.FulfillmentType
	switch model.FulfillmentType(in.FulfillmentType) {
	case model.FulfillmentDelivery:
		fulfillment = model.FulfillmentDelivery
	case model.FulfillmentPickup:
		fulfillment = model.FulfillmentPickup
	default:
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "invalid fulfillment_type")
	}

	snap, err := u.carts.Snapshot(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, err
	}
	if len(snap.Items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	//DELIVERYは住所必須＋所有チェック
	var addressID *int64
	if fulfillment == model.FulfillmentDelivery {
		if in.AddressID <= 0 {
			return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "address is required for delivery")
		}
		addr, err := u.addresses.FindByID(ctx, in.AddressID)
		if err == repo.ErrNotFound {
			return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
		}
		if err != nil {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if addr.UserID != userID {
			return CheckoutOutput{}, NewHTTPError(http.StatusForbidden, "address does not belong to user")
		}
		id := addr.ID
		addressID = &id
	}

	//明細検証（最初の失敗をそのまま返す）
	lines, err := u.validator.ValidateLines(ctx, snap.Items)
	if err != nil {
		return CheckoutOutput{}, err
	}

	var subtotal int64
	for _, l := range lines {
		subtotal += l.Price * l.Quantity
	}
	if in.TotalCheckoutPrice < subtotal {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("total %d is below the price of the items (%d)", in.TotalCheckoutPrice, subtotal))
	}

	paymentMethod := model.PaymentMethodInstore
	if fulfillment == model.FulfillmentDelivery {
		paymentMethod = model.PaymentMethodOnline
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		now := time.Now()

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:          userID,
			AddressID:       addressID,
			Status:          model.OrderStatusPending,
			FulfillmentType: fulfillment,
			PaymentMethod:   paymentMethod,
			TotalAmount:     in.TotalCheckoutPrice,
			TotalWeightKG:   snap.TotalWeightKG,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//検証で読んだ価格をそのまま凍結する
		orderItems := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           l.ProductID,
				ProductNameSnapshot: l.Name,
				PriceAtPurchase:     l.Price,
				Quantity:            l.Quantity,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 在庫減算。検証はあくまで目安で、ここの条件付きUPDATEが本当の守り。
		// 同じ商品への同時チェックアウトは片方がここで負けて、Txごと巻き戻る。
		for _, l := range lines {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				//メッセージ用に今の在庫を読み直す
				available := int64(0)
				if p, perr := r.Products().FindByID(ctx, l.ProductID); perr == nil {
					available = p.Stock
				}
				return NewHTTPError(http.StatusConflict,
					fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d", l.Name, available, l.Quantity))
			}
		}

		//カートを空にする（カート行は残す）
		if err := r.CartItems().ClearByCartID(ctx, snap.Cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(model.Order{
			ID:              orderID,
			UserID:          userID,
			AddressID:       addressID,
			Status:          model.OrderStatusPending,
			FulfillmentType: fulfillment,
			PaymentMethod:   paymentMethod,
			TotalAmount:     in.TotalCheckoutPrice,
			TotalWeightKG:   snap.TotalWeightKG,
			CreatedAt:       now,
		}, orderItems)
		return nil
	})
	if err != nil {
		return CheckoutOutput{}, err
	}

	//PICKUPはゲートウェイを呼ばずに注文だけ返す
	if fulfillment == model.FulfillmentPickup {
		return CheckoutOutput{Order: out}, nil
	}

	token, err := u.payments.IssueToken(ctx, model.Order{
		ID:          out.ID,
		UserID:      userID,
		TotalAmount: out.TotalAmount,
	})
	if err != nil {
		// 注文はcommit済み。rollbackせず「注文はできたが決済準備に失敗」を区別して返す。
		return CheckoutOutput{Order: out}, NewHTTPError(http.StatusBadGateway,
			fmt.Sprintf("order %d was placed but payment setup failed, retry payment", out.ID))
	}

	return CheckoutOutput{Order: out, PaymentToken: token}, nil
}
