package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

// =====================
// Mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.ShoppingCart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveByUserID(ctx context.Context, userID int64) (model.ShoppingCart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.ShoppingCart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, cartID int64) (model.ShoppingCart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.ShoppingCart)
	return c, args.Error(1)
}

func (m *CartRepoMock) SetCheckedOut(ctx context.Context, cartID int64, at time.Time) error {
	args := m.Called(ctx, cartID, at)
	return args.Error(0)
}

func (m *CartRepoMock) Deactivate(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.CartItem)
	return created, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByCartAndStock(ctx context.Context, cartID int64, skuStockID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, skuStockID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) FindStock(ctx context.Context, skuStockID int64) (model.SkuStock, error) {
	args := m.Called(ctx, skuStockID)
	s, _ := args.Get(0).(model.SkuStock)
	return s, args.Error(1)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, skuStockID int64, qty int64) (bool, error) {
	args := m.Called(ctx, skuStockID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, skuStockID int64, qty int64) error {
	args := m.Called(ctx, skuStockID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) AddSold(ctx context.Context, skuID int64, delta int64) error {
	args := m.Called(ctx, skuID, delta)
	return args.Error(0)
}

func (m *InventoryRepoMock) AddDelivered(ctx context.Context, skuID int64, delta int64) error {
	args := m.Called(ctx, skuID, delta)
	return args.Error(0)
}

type SkuRepoMock struct{ mock.Mock }

func (m *SkuRepoMock) Create(ctx context.Context, sku model.Sku) (model.Sku, error) {
	args := m.Called(ctx, sku)
	created, _ := args.Get(0).(model.Sku)
	return created, args.Error(1)
}

func (m *SkuRepoMock) FindByID(ctx context.Context, skuID int64) (model.Sku, error) {
	args := m.Called(ctx, skuID)
	s, _ := args.Get(0).(model.Sku)
	return s, args.Error(1)
}

func (m *SkuRepoMock) List(ctx context.Context) ([]model.Sku, error) {
	args := m.Called(ctx)
	skus, _ := args.Get(0).([]model.Sku)
	return skus, args.Error(1)
}

func (m *SkuRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Sku, error) {
	args := m.Called(ctx, userID)
	skus, _ := args.Get(0).([]model.Sku)
	return skus, args.Error(1)
}

func (m *SkuRepoMock) Update(ctx context.Context, sku model.Sku) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *SkuRepoMock) Delete(ctx context.Context, skuID int64) error {
	args := m.Called(ctx, skuID)
	return args.Error(0)
}

func (m *SkuRepoMock) CreateImage(ctx context.Context, image model.SkuImage) (model.SkuImage, error) {
	args := m.Called(ctx, image)
	img, _ := args.Get(0).(model.SkuImage)
	return img, args.Error(1)
}

func (m *SkuRepoMock) FindImageByID(ctx context.Context, imageID int64) (model.SkuImage, error) {
	args := m.Called(ctx, imageID)
	img, _ := args.Get(0).(model.SkuImage)
	return img, args.Error(1)
}

func (m *SkuRepoMock) ListImagesBySkuID(ctx context.Context, skuID int64) ([]model.SkuImage, error) {
	args := m.Called(ctx, skuID)
	imgs, _ := args.Get(0).([]model.SkuImage)
	return imgs, args.Error(1)
}

func (m *SkuRepoMock) CreateStock(ctx context.Context, stock model.SkuStock) (model.SkuStock, error) {
	args := m.Called(ctx, stock)
	s, _ := args.Get(0).(model.SkuStock)
	return s, args.Error(1)
}

func (m *SkuRepoMock) ListStockBySkuID(ctx context.Context, skuID int64) ([]model.SkuStock, error) {
	args := m.Called(ctx, skuID)
	stocks, _ := args.Get(0).([]model.SkuStock)
	return stocks, args.Error(1)
}

type CampaignRepoMock struct{ mock.Mock }

func (m *CampaignRepoMock) Create(ctx context.Context, campaign model.Campaign) (model.Campaign, error) {
	args := m.Called(ctx, campaign)
	created, _ := args.Get(0).(model.Campaign)
	return created, args.Error(1)
}

func (m *CampaignRepoMock) FindByID(ctx context.Context, campaignID int64) (model.Campaign, error) {
	args := m.Called(ctx, campaignID)
	c, _ := args.Get(0).(model.Campaign)
	return c, args.Error(1)
}

func (m *CampaignRepoMock) List(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Campaign)
	return cs, args.Error(1)
}

func (m *CampaignRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Campaign, error) {
	args := m.Called(ctx, userID)
	cs, _ := args.Get(0).([]model.Campaign)
	return cs, args.Error(1)
}

func (m *CampaignRepoMock) ListScheduled(ctx context.Context) ([]model.Campaign, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Campaign)
	return cs, args.Error(1)
}

func (m *CampaignRepoMock) Update(ctx context.Context, campaign model.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *CampaignRepoMock) Delete(ctx context.Context, campaignID int64) error {
	args := m.Called(ctx, campaignID)
	return args.Error(0)
}

type DrawRepoMock struct{ mock.Mock }

func (m *DrawRepoMock) Create(ctx context.Context, draw model.Draw) (model.Draw, error) {
	args := m.Called(ctx, draw)
	created, _ := args.Get(0).(model.Draw)
	return created, args.Error(1)
}

func (m *DrawRepoMock) FindByID(ctx context.Context, drawID int64) (model.Draw, error) {
	args := m.Called(ctx, drawID)
	d, _ := args.Get(0).(model.Draw)
	return d, args.Error(1)
}

func (m *DrawRepoMock) FindByCampaignID(ctx context.Context, campaignID int64) (model.Draw, error) {
	args := m.Called(ctx, campaignID)
	d, _ := args.Get(0).(model.Draw)
	return d, args.Error(1)
}

func (m *DrawRepoMock) Update(ctx context.Context, draw model.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *DrawRepoMock) Delete(ctx context.Context, drawID int64) error {
	args := m.Called(ctx, drawID)
	return args.Error(0)
}

func (m *DrawRepoMock) ListEligible(ctx context.Context) ([]model.Draw, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).([]model.Draw)
	return ds, args.Error(1)
}

func (m *DrawRepoMock) ListResolved(ctx context.Context) ([]model.Draw, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).([]model.Draw)
	return ds, args.Error(1)
}

func (m *DrawRepoMock) SetWinnerIfUnset(ctx context.Context, drawID int64, winnerID int64) (bool, error) {
	args := m.Called(ctx, drawID, winnerID)
	return args.Bool(0), args.Error(1)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	args := m.Called(ctx, coupon)
	created, _ := args.Get(0).(model.Coupon)
	return created, args.Error(1)
}

func (m *CouponRepoMock) FindByID(ctx context.Context, couponID int64) (model.Coupon, error) {
	args := m.Called(ctx, couponID)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) FindByCode(ctx context.Context, userID int64, code string) (model.Coupon, error) {
	args := m.Called(ctx, userID, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

func (m *CouponRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Coupon, error) {
	args := m.Called(ctx, userID)
	cs, _ := args.Get(0).([]model.Coupon)
	return cs, args.Error(1)
}

func (m *CouponRepoMock) ListHolderIDsByCampaign(ctx context.Context, campaignID int64) ([]int64, error) {
	args := m.Called(ctx, campaignID)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *CouponRepoMock) MarkRedeemed(ctx context.Context, couponID int64) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

func (m *CouponRepoMock) DeleteByID(ctx context.Context, couponID int64) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, userID, status)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, status)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) Update(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type OrderSkuRepoMock struct{ mock.Mock }

func (m *OrderSkuRepoMock) Create(ctx context.Context, line model.OrderSku) (model.OrderSku, error) {
	args := m.Called(ctx, line)
	created, _ := args.Get(0).(model.OrderSku)
	return created, args.Error(1)
}

func (m *OrderSkuRepoMock) FindByID(ctx context.Context, lineID int64) (model.OrderSku, error) {
	args := m.Called(ctx, lineID)
	l, _ := args.Get(0).(model.OrderSku)
	return l, args.Error(1)
}

func (m *OrderSkuRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderSku, error) {
	args := m.Called(ctx, orderID)
	ls, _ := args.Get(0).([]model.OrderSku)
	return ls, args.Error(1)
}

func (m *OrderSkuRepoMock) Update(ctx context.Context, line model.OrderSku) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *OrderSkuRepoMock) DeleteByID(ctx context.Context, lineID int64) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

type PrizeRepoMock struct{ mock.Mock }

func (m *PrizeRepoMock) Create(ctx context.Context, prize model.Prize) (model.Prize, error) {
	args := m.Called(ctx, prize)
	created, _ := args.Get(0).(model.Prize)
	return created, args.Error(1)
}

func (m *PrizeRepoMock) FindByID(ctx context.Context, prizeID int64) (model.Prize, error) {
	args := m.Called(ctx, prizeID)
	p, _ := args.Get(0).(model.Prize)
	return p, args.Error(1)
}

func (m *PrizeRepoMock) List(ctx context.Context) ([]model.Prize, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.Prize)
	return ps, args.Error(1)
}

func (m *PrizeRepoMock) Update(ctx context.Context, prize model.Prize) error {
	args := m.Called(ctx, prize)
	return args.Error(0)
}

func (m *PrizeRepoMock) Delete(ctx context.Context, prizeID int64) error {
	args := m.Called(ctx, prizeID)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type LocationRepoMock struct{ mock.Mock }

func (m *LocationRepoMock) FindByID(ctx context.Context, locationID int64) (model.Location, error) {
	args := m.Called(ctx, locationID)
	l, _ := args.Get(0).(model.Location)
	return l, args.Error(1)
}

func (m *LocationRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Location, error) {
	args := m.Called(ctx, userID)
	l, _ := args.Get(0).(model.Location)
	return l, args.Error(1)
}

func (m *LocationRepoMock) Upsert(ctx context.Context, location model.Location) (model.Location, error) {
	args := m.Called(ctx, location)
	l, _ := args.Get(0).(model.Location)
	return l, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Fake transaction manager
// =====================

// fnをそのまま実行するだけ（rollbackの検証はsqlite側のテストで行う）
type fakeTxRepos struct {
	orders    *OrderRepoMock
	orderSkus *OrderSkuRepoMock
	carts     *CartRepoMock
	cartItems *CartItemRepoMock
	inventory *InventoryRepoMock
	skus      *SkuRepoMock
	campaigns *CampaignRepoMock
	draws     *DrawRepoMock
	coupons   *CouponRepoMock
}

func (f *fakeTxRepos) Orders() repo.OrderRepository       { return f.orders }
func (f *fakeTxRepos) OrderSkus() repo.OrderSkuRepository { return f.orderSkus }
func (f *fakeTxRepos) Carts() repo.CartRepository         { return f.carts }
func (f *fakeTxRepos) CartItems() repo.CartItemRepository { return f.cartItems }
func (f *fakeTxRepos) Inventory() repo.InventoryRepository {
	return f.inventory
}
func (f *fakeTxRepos) Skus() repo.SkuRepository           { return f.skus }
func (f *fakeTxRepos) Campaigns() repo.CampaignRepository { return f.campaigns }
func (f *fakeTxRepos) Draws() repo.DrawRepository         { return f.draws }
func (f *fakeTxRepos) Coupons() repo.CouponRepository     { return f.coupons }

type fakeTxManager struct {
	repos *fakeTxRepos
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{
		repos: &fakeTxRepos{
			orders:    new(OrderRepoMock),
			orderSkus: new(OrderSkuRepoMock),
			carts:     new(CartRepoMock),
			cartItems: new(CartItemRepoMock),
			inventory: new(InventoryRepoMock),
			skus:      new(SkuRepoMock),
			campaigns: new(CampaignRepoMock),
			draws:     new(DrawRepoMock),
			coupons:   new(CouponRepoMock),
		},
	}
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}
