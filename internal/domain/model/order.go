package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusExchanged OrderStatus = "exchanged"
)

// 許可される遷移だけを列挙。ここに無い組み合わせは全部拒否。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusReturned, OrderStatusExchanged},
}

// ParseOrderStatus は入力文字列をステータスとして検証する。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned, OrderStatusExchanged:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo は遷移グラフの判定。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// 返品はbooking_dateから7日以内。
const ReturnWindow = 7 * 24 * time.Hour

type Order struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64 `gorm:"not null;index" json:"user_id"`
	LocationID int64 `gorm:"not null" json:"location_id"`

	Status OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	TotalQuantity int64 `gorm:"not null;default:0" json:"total_quantity"`
	TotalTax      int64 `gorm:"not null;default:0" json:"total_tax"`
	ShippingFee   int64 `gorm:"not null;default:0" json:"shipping_fee"`
	TotalAmount   int64 `gorm:"not null;default:0" json:"total_amount"`

	BookingDate time.Time `gorm:"not null" json:"booking_date"`

	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文明細。クーポンと1対1。
type OrderSku struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	CouponID    int64 `gorm:"not null;uniqueIndex" json:"coupon_id"`
	CampaignID  int64 `gorm:"not null;index" json:"campaign_id"`
	SkuStockID  int64 `gorm:"not null;index" json:"sku_stock_id"`
	SkuImagesID int64 `gorm:"not null" json:"sku_images_id"`

	Quantity   int64 `gorm:"not null;default:0" json:"quantity"`
	TotalPrice int64 `gorm:"not null;default:0" json:"total_price"`
	SalesTax   int64 `gorm:"not null;default:0" json:"sales_tax"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
