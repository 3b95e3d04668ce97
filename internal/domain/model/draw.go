package model

import "time"

// 抽選。キャンペーンと同時に作られ、ライフサイクル側で
// start/end が入る（armed）か消される（disarmed）。
// winner_id は一度だけセットされる（CASで守る）。
type Draw struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID int64 `gorm:"not null;uniqueIndex" json:"campaign_id"`

	VideoURL string `gorm:"type:varchar(256)" json:"video_url"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	WinnerID *int64 `gorm:"index" json:"winner_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// IsArmed は抽選受付中かどうか。
func (d Draw) IsArmed() bool {
	return d.StartDate != nil && d.EndDate != nil
}
