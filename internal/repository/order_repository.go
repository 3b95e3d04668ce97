package repository

import (
	"context"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// status は空文字なら絞り込みなし
	ListByUserID(ctx context.Context, userID int64, status model.OrderStatus) ([]model.Order, error)
	ListAll(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	Update(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, userID int64, key string) (model.Order, bool, error)
}

type OrderSkuRepository interface {
	Create(ctx context.Context, line model.OrderSku) (model.OrderSku, error)
	FindByID(ctx context.Context, lineID int64) (model.OrderSku, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderSku, error)
	Update(ctx context.Context, line model.OrderSku) error
	DeleteByID(ctx context.Context, lineID int64) error
}
