package model

import "time"

// キャンペーン。SKUの売り切れ状況で is_active が切り替わる。
// threshold（%）はクロージング判定にだけ使う。
type Campaign struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64 `gorm:"not null;index" json:"user_id"`
	SkuID   int64 `gorm:"not null;index" json:"sku_id"`
	PrizeID int64 `gorm:"not null;index" json:"prize_id"`

	Name        string `gorm:"type:varchar(128);not null" json:"name"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Image       string `gorm:"type:varchar(256)" json:"image"`
	Threshold   int    `gorm:"not null;default:80" json:"threshold"`

	IsActive bool `gorm:"not null;default:false" json:"is_active"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 景品。キャンペーンから参照されるだけで所有はしない。
type Prize struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Name        string `gorm:"type:varchar(128);not null" json:"name"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Image       string `gorm:"type:varchar(256)" json:"image"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
