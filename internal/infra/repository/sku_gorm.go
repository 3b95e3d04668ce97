package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type SkuGormRepository struct {
	db *gorm.DB
}

func NewSkuGormRepository(db *gorm.DB) *SkuGormRepository {
	return &SkuGormRepository{db: db}
}

func (r *SkuGormRepository) Create(ctx context.Context, sku model.Sku) (model.Sku, error) {
	if err := r.db.WithContext(ctx).Create(&sku).Error; err != nil {
		return model.Sku{}, err
	}
	return sku, nil
}

func (r *SkuGormRepository) FindByID(ctx context.Context, skuID int64) (model.Sku, error) {
	var sku model.Sku

	err := r.db.WithContext(ctx).
		Where("id = ?", skuID).
		First(&sku).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Sku{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Sku{}, err
	}
	return sku, nil
}

func (r *SkuGormRepository) List(ctx context.Context) ([]model.Sku, error) {
	var skus []model.Sku

	if err := r.db.WithContext(ctx).
		Order("id desc").
		Find(&skus).Error; err != nil {
		return []model.Sku{}, err
	}
	return skus, nil
}

func (r *SkuGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Sku, error) {
	var skus []model.Sku

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&skus).Error; err != nil {
		return []model.Sku{}, err
	}
	return skus, nil
}

func (r *SkuGormRepository) Update(ctx context.Context, sku model.Sku) error {
	res := r.db.WithContext(ctx).
		Model(&model.Sku{}).
		Where("id = ?", sku.ID).
		Updates(map[string]interface{}{
			"name":        sku.Name,
			"description": sku.Description,
			"category":    sku.Category,
			"price":       sku.Price,
			"sales_tax":   sku.SalesTax,
			"quantity":    sku.Quantity,
			"size_chart":  sku.SizeChart,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// SKU本体と画像・在庫バリアントをまとめて削除
func (r *SkuGormRepository) Delete(ctx context.Context, skuID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Sku{}, skuID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		if err := tx.Where("sku_id = ?", skuID).Delete(&model.SkuImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sku_id = ?", skuID).Delete(&model.SkuStock{}).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *SkuGormRepository) CreateImage(ctx context.Context, image model.SkuImage) (model.SkuImage, error) {
	if err := r.db.WithContext(ctx).Create(&image).Error; err != nil {
		return model.SkuImage{}, err
	}
	return image, nil
}

func (r *SkuGormRepository) FindImageByID(ctx context.Context, imageID int64) (model.SkuImage, error) {
	var image model.SkuImage

	err := r.db.WithContext(ctx).
		Where("id = ?", imageID).
		First(&image).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SkuImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.SkuImage{}, err
	}
	return image, nil
}

func (r *SkuGormRepository) ListImagesBySkuID(ctx context.Context, skuID int64) ([]model.SkuImage, error) {
	var images []model.SkuImage

	if err := r.db.WithContext(ctx).
		Where("sku_id = ?", skuID).
		Order("id asc").
		Find(&images).Error; err != nil {
		return []model.SkuImage{}, err
	}
	return images, nil
}

func (r *SkuGormRepository) CreateStock(ctx context.Context, stock model.SkuStock) (model.SkuStock, error) {
	if err := r.db.WithContext(ctx).Create(&stock).Error; err != nil {
		return model.SkuStock{}, err
	}
	return stock, nil
}

func (r *SkuGormRepository) ListStockBySkuID(ctx context.Context, skuID int64) ([]model.SkuStock, error) {
	var stocks []model.SkuStock

	if err := r.db.WithContext(ctx).
		Where("sku_id = ?", skuID).
		Order("id asc").
		Find(&stocks).Error; err != nil {
		return []model.SkuStock{}, err
	}
	return stocks, nil
}
