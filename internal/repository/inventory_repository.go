package repository

import (
	"context"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

// 在庫台帳。バリアント在庫とSKUの累計カウンタだけを触る。
type InventoryRepository interface {
	FindStock(ctx context.Context, skuStockID int64) (model.SkuStock, error)

	// 在庫が足りるときだけ減算（stock >= qty の条件付きUPDATE）
	DecreaseStockIfEnough(ctx context.Context, skuStockID int64, qty int64) (bool, error)

	// 在庫戻し（カート削除・キャンセル・返品）
	IncreaseStock(ctx context.Context, skuStockID int64, qty int64) error

	// number_sold への相対加算。deltaは負も可。
	AddSold(ctx context.Context, skuID int64, delta int64) error

	// number_delivered への相対加算。deltaは負も可。
	AddDelivered(ctx context.Context, skuID int64, delta int64) error
}
