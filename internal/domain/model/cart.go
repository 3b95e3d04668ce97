package model

import "time"

// 1ユーザーにつき is_active=true は1つ。
// checked_out_at が入ったら明細は凍結、注文作成を待つ。
type ShoppingCart struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64 `gorm:"not null;index" json:"user_id"`
	IsActive bool  `gorm:"not null;default:true;index" json:"is_active"`

	CheckedOutAt *time.Time `json:"checked_out_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カート明細。追加時点で在庫を引き当て済み。
// 同一在庫(SkuStock)の明細は1カートに1件だけ。
type CartItem struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID      int64 `gorm:"not null;index" json:"cart_id"`
	CampaignID  int64 `gorm:"not null;index" json:"campaign_id"`
	SkuStockID  int64 `gorm:"not null;index" json:"sku_stock_id"`
	SkuImagesID int64 `gorm:"not null" json:"sku_images_id"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	//引当時点の単価スナップショット
	UnitPriceSnapshot int64 `gorm:"not null;column:unit_price_snapshot" json:"unit_price_snapshot"`

	ReservationDate time.Time `gorm:"not null;autoCreateTime" json:"reservation_date"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
