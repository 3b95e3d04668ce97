package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type SkuRepository interface {
	Create(ctx context.Context, sku model.Sku) (model.Sku, error)
	FindByID(ctx context.Context, skuID int64) (model.Sku, error)
	List(ctx context.Context) ([]model.Sku, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Sku, error)
	Update(ctx context.Context, sku model.Sku) error

	//画像・在庫バリアントも道連れで消す
	Delete(ctx context.Context, skuID int64) error

	CreateImage(ctx context.Context, image model.SkuImage) (model.SkuImage, error)
	FindImageByID(ctx context.Context, imageID int64) (model.SkuImage, error)
	ListImagesBySkuID(ctx context.Context, skuID int64) ([]model.SkuImage, error)

	CreateStock(ctx context.Context, stock model.SkuStock) (model.SkuStock, error)
	ListStockBySkuID(ctx context.Context, skuID int64) ([]model.SkuStock, error)
}
