package repository

import (
	"context"

	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders    repo.OrderRepository
	orderSkus repo.OrderSkuRepository
	carts     repo.CartRepository
	cartItems repo.CartItemRepository
	inventory repo.InventoryRepository
	skus      repo.SkuRepository
	campaigns repo.CampaignRepository
	draws     repo.DrawRepository
	coupons   repo.CouponRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposGorm) OrderSkus() repo.OrderSkuRepository  { return r.orderSkus }
func (r *txReposGorm) Carts() repo.CartRepository          { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository  { return r.cartItems }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }
func (r *txReposGorm) Skus() repo.SkuRepository            { return r.skus }
func (r *txReposGorm) Campaigns() repo.CampaignRepository  { return r.campaigns }
func (r *txReposGorm) Draws() repo.DrawRepository          { return r.draws }
func (r *txReposGorm) Coupons() repo.CouponRepository      { return r.coupons }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:    NewOrderGormRepository(tx),
			orderSkus: NewOrderSkuGormRepository(tx),
			carts:     NewCartGormRepository(tx),
			cartItems: NewCartItemGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
			skus:      NewSkuGormRepository(tx),
			campaigns: NewCampaignGormRepository(tx),
			draws:     NewDrawGormRepository(tx),
			coupons:   NewCouponGormRepository(tx),
		}
		return fn(r)
	})
}
