package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) FindStock(ctx context.Context, skuStockID int64) (model.SkuStock, error) {
	var stock model.SkuStock

	err := r.db.WithContext(ctx).
		Where("id = ?", skuStockID).
		First(&stock).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SkuStock{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SkuStock{}, err
	}
	return stock, nil
}

// 在庫が足りるときだけ減らす。
// 同時リクエストでも stock >= qty の条件付きUPDATEで売り越さない。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, skuStockID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SkuStock{}).
		Where("id = ? AND stock >= ?", skuStockID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（カート削除・キャンセル・返品）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, skuStockID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.SkuStock{}).
		Where("id = ?", skuStockID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// number_sold への相対加算。読み直してから書かない。
func (r *InventoryGormRepository) AddSold(ctx context.Context, skuID int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Sku{}).
		Where("id = ?", skuID).
		Update("number_sold", gorm.Expr("number_sold + ?", delta))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) AddDelivered(ctx context.Context, skuID int64, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Sku{}).
		Where("id = ?", skuID).
		Update("number_delivered", gorm.Expr("number_delivered + ?", delta))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
