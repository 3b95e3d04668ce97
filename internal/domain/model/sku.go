package model

import "time"

// 商品。quantity はキャンペーン全体の販売枠。
// number_sold <= quantity, number_delivered <= number_sold を保つ。
type Sku struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Name        string `gorm:"type:varchar(128);not null" json:"name"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Category    string `gorm:"type:varchar(128);not null" json:"category"`

	Price    int64 `gorm:"not null" json:"price"`
	SalesTax int64 `gorm:"not null;default:0" json:"sales_tax"`

	Quantity        int64 `gorm:"not null" json:"quantity"`
	NumberSold      int64 `gorm:"not null;default:0" json:"number_sold"`
	NumberDelivered int64 `gorm:"not null;default:0" json:"number_delivered"`

	SizeChart string `gorm:"type:varchar(256)" json:"size_chart"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 商品画像。URLのみ保存（アップロードは外部コラボレータ）。
type SkuImage struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SkuID int64  `gorm:"not null;index" json:"sku_id"`
	Image string `gorm:"type:varchar(256);not null" json:"image"`
}

// サイズ×カラーごとの在庫。stock >= 0 をDB側の条件更新で守る。
type SkuStock struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SkuID int64  `gorm:"not null;index" json:"sku_id"`
	Size  string `gorm:"type:varchar(64);not null" json:"size"`
	Color string `gorm:"type:varchar(64);not null" json:"color"`
	Stock int64  `gorm:"not null" json:"stock"`
}
