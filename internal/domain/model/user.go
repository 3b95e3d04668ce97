package model

import "time"

// 会員。出品者も購入者も同じテーブル。
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Firstname string `gorm:"type:varchar(128);not null" json:"firstname"`
	Lastname  string `gorm:"type:varchar(128);not null" json:"lastname"`
	Email     string `gorm:"type:varchar(128);uniqueIndex;not null" json:"email"`
	MobileNo  string `gorm:"type:varchar(30)" json:"mobile_no"`

	//bcryptハッシュのみ保存
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	ProfilePicture string `gorm:"type:varchar(256)" json:"profile_picture"`

	Active  bool `gorm:"not null;default:true" json:"active"`
	IsAdmin bool `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 配送先。1ユーザー1件で上書き更新する。
type Location struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Address    string `gorm:"type:varchar(255);not null" json:"address"`
	City       string `gorm:"type:varchar(128);not null" json:"city"`
	Province   string `gorm:"type:varchar(128)" json:"province"`
	Country    string `gorm:"type:varchar(128);not null" json:"country"`
	PostalCode string `gorm:"type:varchar(20)" json:"postal_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
