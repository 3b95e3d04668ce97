package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

// sqliteのインメモリDBでrepoの実装を検証する。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// コネクションごとに別DBにならないよう1本に固定する
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.Sku{},
		&model.SkuImage{},
		&model.SkuStock{},
		&model.Prize{},
		&model.Campaign{},
		&model.Draw{},
		&model.Coupon{},
		&model.ShoppingCart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderSku{},
		&model.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}
