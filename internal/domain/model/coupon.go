package model

import (
	"fmt"
	"time"
)

// 抽選参加券。注文明細1件につき1枚発行する。
type Coupon struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64 `gorm:"not null;index" json:"user_id"`
	CampaignID  int64 `gorm:"not null;index" json:"campaign_id"`
	SkuStockID  int64 `gorm:"not null;index" json:"sku_stock_id"`
	SkuImagesID int64 `gorm:"not null" json:"sku_images_id"`

	Code       string `gorm:"type:varchar(128);uniqueIndex;not null" json:"code"`
	AmountPaid int64  `gorm:"not null" json:"amount_paid"`
	IsRedeemed bool   `gorm:"not null;default:false" json:"is_redeemed"`

	PurchasedAt time.Time `gorm:"not null" json:"purchased_at"`
}

// クーポンコードを (user, campaign, stock, image, 時刻) から決定的に導出する。
// 形式: XYZ-<user><c%10><i%10><s%10>-MMDD-MMSS
func GenerateCouponCode(userID, campaignID, skuStockID, skuImagesID int64, t time.Time) string {
	letter := func(n int64) byte { return byte('A' + n%26) }

	letters := string([]byte{letter(campaignID), letter(skuStockID), letter(skuImagesID)})
	digits := fmt.Sprintf("%d%d%d%d", userID, campaignID%10, skuImagesID%10, skuStockID%10)

	return fmt.Sprintf("%s-%s-%s-%s", letters, digits, t.Format("0102"), t.Format("0405"))
}
