package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

func TestInventoryGorm_DecreaseStockIfEnough(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInventoryGormRepository(db)

	stock := model.SkuStock{SkuID: 1, Size: "M", Color: "black", Stock: 5}
	assert.NoError(t, db.Create(&stock).Error)

	ok, err := repo.DecreaseStockIfEnough(ctx, stock.ID, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	// 残り2。3はもう引けない
	ok, err = repo.DecreaseStockIfEnough(ctx, stock.ID, 3)
	assert.NoError(t, err)
	assert.False(t, ok)

	// ちょうど残量は引ける
	ok, err = repo.DecreaseStockIfEnough(ctx, stock.ID, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	// ゼロからは1も引けない（売り越し防止）
	ok, err = repo.DecreaseStockIfEnough(ctx, stock.ID, 1)
	assert.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindStock(ctx, stock.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), got.Stock)
}

// 引当と戻しを繰り返しても総量は変わらない。
func TestInventoryGorm_StockConservation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInventoryGormRepository(db)

	stock := model.SkuStock{SkuID: 1, Size: "L", Color: "white", Stock: 10}
	assert.NoError(t, db.Create(&stock).Error)

	steps := []struct {
		reserve bool
		qty     int64
	}{
		{true, 4},  // 6
		{true, 3},  // 3
		{false, 2}, // 5
		{true, 5},  // 0
		{false, 7}, // 7
		{true, 1},  // 6
	}

	for _, s := range steps {
		if s.reserve {
			ok, err := repo.DecreaseStockIfEnough(ctx, stock.ID, s.qty)
			assert.NoError(t, err)
			assert.True(t, ok)
		} else {
			assert.NoError(t, repo.IncreaseStock(ctx, stock.ID, s.qty))
		}
	}

	got, err := repo.FindStock(ctx, stock.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), got.Stock)
}

func TestInventoryGorm_CountersAreRelative(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInventoryGormRepository(db)

	sku := model.Sku{UserID: 1, Name: "tee", Description: "d", Category: "c", Price: 100, Quantity: 50}
	assert.NoError(t, db.Create(&sku).Error)

	assert.NoError(t, repo.AddSold(ctx, sku.ID, 3))
	assert.NoError(t, repo.AddSold(ctx, sku.ID, 2))
	assert.NoError(t, repo.AddSold(ctx, sku.ID, -1)) // キャンセル分
	assert.NoError(t, repo.AddDelivered(ctx, sku.ID, 4))
	assert.NoError(t, repo.AddDelivered(ctx, sku.ID, -4)) // 返品分

	var got model.Sku
	assert.NoError(t, db.First(&got, sku.ID).Error)
	assert.Equal(t, int64(4), got.NumberSold)
	assert.Equal(t, int64(0), got.NumberDelivered)
}

func TestInventoryGorm_MissingRows(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInventoryGormRepository(db)

	_, err := repo.FindStock(ctx, 999)
	assert.Error(t, err)

	assert.Error(t, repo.IncreaseStock(ctx, 999, 1))
	assert.Error(t, repo.AddSold(ctx, 999, 1))
}
