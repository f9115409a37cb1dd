package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	addresses  repo.AddressRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Addresses() repo.AddressRepository    { return r.addresses }

// =====================
// Repository mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Create(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) ClearByCartID(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Address)
	return list, args.Error(1)
}

func (m *AddressRepoMock) Create(ctx context.Context, a model.Address) (model.Address, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Address)
	return created, args.Error(1)
}

func (m *AddressRepoMock) DeleteByID(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *AddressRepoMock) ClearDefault(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AddressRepoMock) MarkDefault(ctx context.Context, addressID int64) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

func (m *OrderRepoMock) ListAll(ctx context.Context, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return orders, total, args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

// =====================
// Collaborator mocks
// =====================

type RegionAPIMock struct{ mock.Mock }

func (m *RegionAPIMock) FindProvinceID(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *RegionAPIMock) FindCityID(ctx context.Context, provinceID string, name string) (string, error) {
	args := m.Called(ctx, provinceID, name)
	return args.String(0), args.Error(1)
}

func (m *RegionAPIMock) FindDistrictID(ctx context.Context, cityID string, name string) (string, error) {
	args := m.Called(ctx, cityID, name)
	return args.String(0), args.Error(1)
}

func (m *RegionAPIMock) FindSubdistrictID(ctx context.Context, districtID string, name string) (string, error) {
	args := m.Called(ctx, districtID, name)
	return args.String(0), args.Error(1)
}

type RegionCacheMock struct{ mock.Mock }

func (m *RegionCacheMock) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *RegionCacheMock) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// goroutineから触られても安全な地域キャッシュ（アサーションには使わない）
type regionCacheStub struct {
	mu    sync.Mutex
	items map[string]string
}

func newRegionCacheStub() *regionCacheStub {
	return &regionCacheStub{items: map[string]string{}}
}

func (s *regionCacheStub) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *regionCacheStub) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

type GeocoderMock struct{ mock.Mock }

func (m *GeocoderMock) Geocode(ctx context.Context, fullAddress string) (float64, float64, error) {
	args := m.Called(ctx, fullAddress)
	lat, _ := args.Get(0).(float64)
	lng, _ := args.Get(1).(float64)
	return lat, lng, args.Error(2)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateTransaction(ctx context.Context, req GatewayTransactionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// notifierStub は受け取った通知をchannelへ流す（非同期dispatchの同期に使う）
type notifierStub struct {
	err error
	got chan OrderStatusNotification
}

func newNotifierStub(err error) *notifierStub {
	return &notifierStub{err: err, got: make(chan OrderStatusNotification, 1)}
}

func (s *notifierStub) NotifyOrderStatus(ctx context.Context, n OrderStatusNotification) error {
	s.got <- n
	return s.err
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
