package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// 合計（数量・重量・金額）は保存せず、読むたびに現在の商品行から畳み込む。
// 商品の価格や重量が追加後に変わっていても、ここで返す合計は常に今の値。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartItemResponse struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Price     int64   `json:"price"`
	WeightKG  float64 `json:"weight_kg"`
	Quantity  int64   `json:"quantity"`
	Subtotal  int64   `json:"subtotal"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalWeightKG float64            `json:"total_weight_kg"`
	TotalPrice    int64              `json:"total_price"`
}

// 集約結果。検証とチェックアウトはItemsのProduct（読み込み時点の価格）を使う。
type CartSnapshot struct {
	Cart          model.Cart
	Items         []model.CartItem
	TotalQuantity int64
	TotalWeightKG float64
	TotalPrice    int64
}

// Snapshot はカートと明細を読み、合計を導出する。書き込みはしない。
// カート行が無いのはデータ異常（登録時に作られる）なので404。
// 空カートは正常で、明細0件のSnapshotを返す。
func (u *CartUsecase) Snapshot(ctx context.Context, userID int64) (CartSnapshot, error) {
	if userID <= 0 {
		return CartSnapshot{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartSnapshot{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartSnapshot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartSnapshot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	snap := CartSnapshot{Cart: cart, Items: items}
	for _, it := range items {
		if it.Product == nil {
			//明細が消えた商品を指している（Validatorが個別に報告する）
			continue
		}
		snap.TotalQuantity += it.Quantity
		snap.TotalWeightKG += float64(it.Quantity) * it.Product.WeightKG
		snap.TotalPrice += it.Quantity * it.Product.Price
	}

	return snap, nil
}

// GetCart はカート取得
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	snap, err := u.Snapshot(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}
	return toCartResponse(snap), nil
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// AddToCart はカートに追加（同一商品は数量加算）
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//追加後の数量が在庫を超えないか
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty = it.Quantity
			break
		}
	}
	if existingQty+in.Quantity > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCart(ctx, userID)
}

// 数量変更（所有チェック＋在庫チェック）
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if in.Quantity > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCart(ctx, userID)
}

// 明細削除（所有チェック）
func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCart(ctx, userID)
}

func toCartResponse(snap CartSnapshot) CartResponse {
	items := make([]CartItemResponse, 0, len(snap.Items))
	for _, it := range snap.Items {
		if it.Product == nil {
			continue
		}

		category := ""
		if it.Product.Category != nil {
			category = it.Product.Category.Name
		}

		items = append(items, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Category:  category,
			ImageURL:  it.Product.ImageURL,
			Price:     it.Product.Price,
			WeightKG:  it.Product.WeightKG,
			Quantity:  it.Quantity,
			Subtotal:  it.Quantity * it.Product.Price,
		})
	}

	return CartResponse{
		Items:         items,
		TotalQuantity: snap.TotalQuantity,
		TotalWeightKG: snap.TotalWeightKG,
		TotalPrice:    snap.TotalPrice,
	}
}
