package repository

import (
	"context"
	"time"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.ShoppingCart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.ShoppingCart, error)
	FindByID(ctx context.Context, cartID int64) (model.ShoppingCart, error)

	//checked_out_at を1回だけ打刻
	SetCheckedOut(ctx context.Context, cartID int64, at time.Time) error

	//注文確定後に is_active=false へ
	Deactivate(ctx context.Context, cartID int64) error
}

type CartItemRepository interface {
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error)
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)

	// 同一在庫の明細が既にあるかの重複チェック用
	FindByCartAndStock(ctx context.Context, cartID int64, skuStockID int64) (model.CartItem, error)

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error)
}
