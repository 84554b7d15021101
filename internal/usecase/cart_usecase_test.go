package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64, unitPrice decimal.Decimal) error {
	args := m.Called(ctx, cartID, productID, addQty, unitPrice)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) FindByCartAndID(ctx context.Context, cartID string, cartItemID string) (model.CartItem, error) {
	args := m.Called(ctx, cartID, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	panic("not used in CartUsecase tests")
}

// Tx本体はGORM側の責務なので、テストでは素通しにする
type passthroughTxManager struct {
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	products  repo.ProductRepository
}

func (m *passthroughTxManager) Carts() repo.CartRepository         { return m.carts }
func (m *passthroughTxManager) CartItems() repo.CartItemRepository { return m.cartItems }
func (m *passthroughTxManager) Products() repo.ProductRepository   { return m.products }

func (m *passthroughTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m)
}

func newCartUsecase(cartRepo *CartRepoMock, itemRepo *CartItemRepoMock, productRepo *CartProductRepoMock) *usecase.CartUsecase {
	tx := &passthroughTxManager{carts: cartRepo, cartItems: itemRepo, products: productRepo}
	return usecase.NewCartUsecase(tx, cartRepo, itemRepo, productRepo)
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

// =====================
// GetCart
// =====================

func TestCartUsecase_GetCart_NoActiveCart_ReturnsEmpty(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").Return(model.Cart{}, repo.ErrNotFound)

	out, err := uc.GetCart(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

func TestCartUsecase_GetCart_TotalUsesSnapshotPrice(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	cart := model.Cart{ID: "cart-1", UserID: "user-1", Status: model.CartStatusActive}
	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").Return(cart, nil)

	// スナップショットは10.00、現在価格は99.99
	items := []model.CartItem{
		{ID: "item-1", CartID: "cart-1", ProductID: "prod-1", Quantity: 2, UnitPrice: mustDecimal(t, "10.00")},
		{ID: "item-2", CartID: "cart-1", ProductID: "prod-2", Quantity: 1, UnitPrice: mustDecimal(t, "4.90")},
	}
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return(items, nil)

	productRepo.On("FindByID", mock.Anything, "prod-1").
		Return(model.Product{ID: "prod-1", Name: "Agua", Price: mustDecimal(t, "99.99"), IsActive: true}, nil)
	productRepo.On("FindByID", mock.Anything, "prod-2").
		Return(model.Product{ID: "prod-2", Name: "Jugo", Price: mustDecimal(t, "4.90"), IsActive: true}, nil)

	out, err := uc.GetCart(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.True(t, out.Total.Equal(mustDecimal(t, "24.90")), "total = %s", out.Total)
	assert.True(t, out.Items[0].UnitPrice.Equal(mustDecimal(t, "10.00")))
	assert.Equal(t, "Agua", out.Items[0].Name)
}

// =====================
// AddToCart
// =====================

func TestCartUsecase_AddToCart_InvalidProductID(t *testing.T) {
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(CartProductRepoMock))

	_, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	uc := newCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(CartProductRepoMock))

	for _, qty := range []int64{0, -1} {
		_, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "prod-1", Quantity: qty})
		assertHTTPStatus(t, err, http.StatusBadRequest)
	}
}

func TestCartUsecase_AddToCart_ProductNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, "prod-x").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "prod-x", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)

	// 商品が無ければカートは作られない
	cartRepo.AssertNotCalled(t, "GetOrCreateActiveByUserID", mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InactiveProductIsNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, "prod-1").
		Return(model.Product{ID: "prod-1", IsActive: false, Price: mustDecimal(t, "10.00")}, nil)

	_, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "prod-1", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_AddToCart_Success_SnapshotsPrice(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	price := mustDecimal(t, "10.00")
	product := model.Product{ID: "prod-1", Name: "Agua", Price: price, IsActive: true}
	cart := model.Cart{ID: "cart-1", UserID: "user-1", Status: model.CartStatusActive}

	productRepo.On("FindByID", mock.Anything, "prod-1").Return(product, nil)
	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, "user-1").Return(cart, nil)
	itemRepo.On("UpsertByCartAndProduct", mock.Anything, "cart-1", "prod-1", int64(2), price).Return(nil)

	// 返却用の再読込
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{
		{ID: "item-1", CartID: "cart-1", ProductID: "prod-1", Quantity: 2, UnitPrice: price},
	}, nil)

	out, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "prod-1", Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.True(t, out.Total.Equal(mustDecimal(t, "20.00")))

	itemRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_UpsertFailureRollsUpAsInternal(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	productRepo.On("FindByID", mock.Anything, "prod-1").
		Return(model.Product{ID: "prod-1", Price: mustDecimal(t, "10.00"), IsActive: true}, nil)
	cartRepo.On("GetOrCreateActiveByUserID", mock.Anything, "user-1").
		Return(model.Cart{ID: "cart-1"}, nil)
	itemRepo.On("UpsertByCartAndProduct", mock.Anything, "cart-1", "prod-1", int64(1), mock.Anything).
		Return(errors.New("duplicate key"))

	_, err := uc.AddToCart(context.Background(), "user-1", usecase.AddCartItemInput{ProductID: "prod-1", Quantity: 1})
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}

// =====================
// UpdateCartItem / RemoveCartItem
// =====================

func TestCartUsecase_UpdateCartItem_InvalidQuantity(t *testing.T) {
	itemRepo := new(CartItemRepoMock)
	uc := newCartUsecase(new(CartRepoMock), itemRepo, new(CartProductRepoMock))

	_, err := uc.UpdateCartItem(context.Background(), "user-1", "item-1", usecase.UpdateCartItemInput{Quantity: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)

	// 数量は変更されない
	itemRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_NoActiveCart(t *testing.T) {
	cartRepo := new(CartRepoMock)
	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(CartProductRepoMock))

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.UpdateCartItem(context.Background(), "user-1", "item-1", usecase.UpdateCartItemInput{Quantity: 2})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_UpdateCartItem_ItemOfOtherUserIsNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, new(CartProductRepoMock))

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").
		Return(model.Cart{ID: "cart-1", UserID: "user-1"}, nil)
	// 他ユーザーの明細IDは自分のカート内では見つからない
	itemRepo.On("FindByCartAndID", mock.Anything, "cart-1", "item-of-other").
		Return(model.CartItem{}, repo.ErrNotFound)

	_, err := uc.UpdateCartItem(context.Background(), "user-1", "item-of-other", usecase.UpdateCartItemInput{Quantity: 2})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_UpdateCartItem_SetsAbsoluteQuantity(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, productRepo)

	price := mustDecimal(t, "10.00")
	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").
		Return(model.Cart{ID: "cart-1", UserID: "user-1"}, nil)
	itemRepo.On("FindByCartAndID", mock.Anything, "cart-1", "item-1").
		Return(model.CartItem{ID: "item-1", CartID: "cart-1", ProductID: "prod-1", Quantity: 5, UnitPrice: price}, nil)
	itemRepo.On("UpdateQuantity", mock.Anything, "item-1", int64(1)).Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{
		{ID: "item-1", CartID: "cart-1", ProductID: "prod-1", Quantity: 1, UnitPrice: price},
	}, nil)
	productRepo.On("FindByID", mock.Anything, "prod-1").
		Return(model.Product{ID: "prod-1", Name: "Agua", IsActive: true, Price: price}, nil)

	out, err := uc.UpdateCartItem(context.Background(), "user-1", "item-1", usecase.UpdateCartItemInput{Quantity: 1})
	assert.NoError(t, err)
	assert.True(t, out.Total.Equal(mustDecimal(t, "10.00")))
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_RemoveCartItem_LastItemLeavesEmptyCart(t *testing.T) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	uc := newCartUsecase(cartRepo, itemRepo, new(CartProductRepoMock))

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").
		Return(model.Cart{ID: "cart-1", UserID: "user-1"}, nil)
	itemRepo.On("FindByCartAndID", mock.Anything, "cart-1", "item-1").
		Return(model.CartItem{ID: "item-1", CartID: "cart-1"}, nil)
	itemRepo.On("DeleteByID", mock.Anything, "item-1").Return(nil)
	itemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	out, err := uc.RemoveCartItem(context.Background(), "user-1", "item-1")
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

// =====================
// ClearCart
// =====================

func TestCartUsecase_ClearCart_NoActiveCart(t *testing.T) {
	cartRepo := new(CartRepoMock)
	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(CartProductRepoMock))

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.ClearCart(context.Background(), "user-1")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_ClearCart_Success(t *testing.T) {
	cartRepo := new(CartRepoMock)
	uc := newCartUsecase(cartRepo, new(CartItemRepoMock), new(CartProductRepoMock))

	cartRepo.On("FindActiveByUserID", mock.Anything, "user-1").
		Return(model.Cart{ID: "cart-1", UserID: "user-1"}, nil)
	cartRepo.On("Clear", mock.Anything, "cart-1").Return(nil)

	out, err := uc.ClearCart(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "cart cleared", out.Message)
	cartRepo.AssertExpectations(t)
}

// =====================
// シナリオ（インメモリ実装で一連の流れを確認）
// =====================

// upsert/スナップショットのセマンティクスを持つインメモリ実装。
// GORM実装と同じ契約をusecase越しに検証する
type memStore struct {
	products map[string]model.Product
	carts    map[string]model.Cart
	items    map[string]model.CartItem
	seq      int
	now      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]model.Product{},
		carts:    map[string]model.Cart{},
		items:    map[string]model.CartItem{},
		now:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) Carts() repo.CartRepository         { return s }
func (s *memStore) CartItems() repo.CartItemRepository { return s }
func (s *memStore) Products() repo.ProductRepository   { return s }

func (s *memStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s)
}

func (s *memStore) GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	for _, c := range s.carts {
		if c.UserID == userID && c.Status == model.CartStatusActive {
			return c, nil
		}
	}
	c := model.Cart{ID: s.nextID("cart"), UserID: userID, Status: model.CartStatusActive, CreatedAt: s.tick()}
	s.carts[c.ID] = c
	return c, nil
}

func (s *memStore) FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	for _, c := range s.carts {
		if c.UserID == userID && c.Status == model.CartStatusActive {
			return c, nil
		}
	}
	return model.Cart{}, repo.ErrNotFound
}

func (s *memStore) UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error {
	c, ok := s.carts[cartID]
	if !ok {
		return repo.ErrNotFound
	}
	c.Status = status
	s.carts[cartID] = c
	return nil
}

func (s *memStore) Clear(ctx context.Context, cartID string) error {
	if _, ok := s.carts[cartID]; !ok {
		return repo.ErrNotFound
	}
	for id, it := range s.items {
		if it.CartID == cartID {
			delete(s.items, id)
		}
	}
	return nil
}

func (s *memStore) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem
	for _, it := range s.items {
		if it.CartID == cartID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (s *memStore) UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64, unitPrice decimal.Decimal) error {
	for id, it := range s.items {
		if it.CartID == cartID && it.ProductID == productID {
			// 既存行に加算。unit_priceは初回のまま
			it.Quantity += addQty
			s.items[id] = it
			return nil
		}
	}
	it := model.CartItem{
		ID:        s.nextID("item"),
		CartID:    cartID,
		ProductID: productID,
		Quantity:  addQty,
		UnitPrice: unitPrice,
		CreatedAt: s.tick(),
	}
	s.items[it.ID] = it
	return nil
}

func (s *memStore) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	it, ok := s.items[cartItemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	s.items[cartItemID] = it
	return nil
}

func (s *memStore) DeleteByID(ctx context.Context, cartItemID string) error {
	if _, ok := s.items[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(s.items, cartItemID)
	return nil
}

func (s *memStore) FindByCartAndID(ctx context.Context, cartID string, cartItemID string) (model.CartItem, error) {
	it, ok := s.items[cartItemID]
	if !ok || it.CartID != cartID {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *memStore) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (s *memStore) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (s *memStore) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (s *memStore) SoftDelete(ctx context.Context, id string) error {
	panic("not used in CartUsecase tests")
}

func TestCartUsecase_Scenario_AddMergeUpdateRemove(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.products["prod-p"] = model.Product{
		ID: "prod-p", Name: "Agua", Price: mustDecimal(t, "10.00"), IsActive: true,
	}

	uc := usecase.NewCartUsecase(store, store, store, store)

	// P(10.00)を2個 → total 20.00
	out, err := uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-p", Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.True(t, out.Total.Equal(mustDecimal(t, "20.00")), "total = %s", out.Total)

	// 同じPを3個 → 明細は1行のまま数量5、total 50.00
	out, err = uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-p", Quantity: 3})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.True(t, out.Total.Equal(mustDecimal(t, "50.00")))

	// カタログ側の価格が変わってもスナップショットは動かない
	p := store.products["prod-p"]
	p.Price = mustDecimal(t, "99.99")
	store.products["prod-p"] = p

	view, err := uc.GetCart(ctx, "user-u")
	assert.NoError(t, err)
	assert.True(t, view.Total.Equal(mustDecimal(t, "50.00")))
	assert.True(t, view.Items[0].UnitPrice.Equal(mustDecimal(t, "10.00")))

	itemID := view.Items[0].ID

	// 数量を1に（絶対値） → total 10.00
	out, err = uc.UpdateCartItem(ctx, "user-u", itemID, usecase.UpdateCartItemInput{Quantity: 1})
	assert.NoError(t, err)
	assert.True(t, out.Total.Equal(mustDecimal(t, "10.00")))

	// 0個は拒否され、数量は変わらない
	_, err = uc.UpdateCartItem(ctx, "user-u", itemID, usecase.UpdateCartItemInput{Quantity: 0})
	assertHTTPStatus(t, err, http.StatusBadRequest)
	view, err = uc.GetCart(ctx, "user-u")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), view.Items[0].Quantity)

	// 最後の明細を削除 → 空のACTIVEカートが残る
	out, err = uc.RemoveCartItem(ctx, "user-u", itemID)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())

	_, err = store.FindActiveByUserID(ctx, "user-u")
	assert.NoError(t, err, "cart row must survive removing the last item")

	// 空カートのクリアは成功、カートが無いユーザーのクリアは404
	cleared, err := uc.ClearCart(ctx, "user-u")
	assert.NoError(t, err)
	assert.Equal(t, "cart cleared", cleared.Message)

	_, err = uc.ClearCart(ctx, "user-nobody")
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_Scenario_OrderedCartIsNotReused(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.products["prod-a"] = model.Product{ID: "prod-a", Name: "A", Price: mustDecimal(t, "1.00"), IsActive: true}

	uc := usecase.NewCartUsecase(store, store, store, store)

	_, err := uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-a", Quantity: 2})
	assert.NoError(t, err)

	cart, err := store.FindActiveByUserID(ctx, "user-u")
	assert.NoError(t, err)

	// ordered になったカートはACTIVEとして数えない
	assert.NoError(t, store.UpdateStatus(ctx, cart.ID, model.CartStatusOrdered))

	view, err := uc.GetCart(ctx, "user-u")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)

	// 次のaddは新しいACTIVEカートを作る
	out, err := uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-a", Quantity: 1})
	assert.NoError(t, err)
	assert.True(t, out.Total.Equal(mustDecimal(t, "1.00")))
	assert.Len(t, store.carts, 2)

	fresh, err := store.FindActiveByUserID(ctx, "user-u")
	assert.NoError(t, err)
	assert.NotEqual(t, cart.ID, fresh.ID)
}

func TestCartUsecase_Scenario_ActiveCartIsReusedAcrossAdds(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.products["prod-a"] = model.Product{ID: "prod-a", Name: "A", Price: mustDecimal(t, "1.00"), IsActive: true}
	store.products["prod-b"] = model.Product{ID: "prod-b", Name: "B", Price: mustDecimal(t, "2.00"), IsActive: true}

	uc := usecase.NewCartUsecase(store, store, store, store)

	_, err := uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-a", Quantity: 1})
	assert.NoError(t, err)
	_, err = uc.AddToCart(ctx, "user-u", usecase.AddCartItemInput{ProductID: "prod-b", Quantity: 1})
	assert.NoError(t, err)

	// ACTIVEカートは1つだけ
	assert.Len(t, store.carts, 1)

	// 明細は追加順
	view, err := uc.GetCart(ctx, "user-u")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "prod-a", view.Items[0].ProductID)
	assert.Equal(t, "prod-b", view.Items[1].ProductID)
	assert.True(t, view.Total.Equal(mustDecimal(t, "3.00")))
}
