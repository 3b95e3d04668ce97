package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

type orderFixture struct {
	uc        *OrderUsecase
	tx        *fakeTxManager
	orders    *OrderRepoMock
	orderSkus *OrderSkuRepoMock
	coupons   *CouponRepoMock
	locations *LocationRepoMock
	audit     *AuditRepoMock
}

func newOrderFixture() *orderFixture {
	tx := newFakeTxManager()
	orders := new(OrderRepoMock)
	orderSkus := new(OrderSkuRepoMock)
	coupons := new(CouponRepoMock)
	locations := new(LocationRepoMock)
	audit := new(AuditRepoMock)

	return &orderFixture{
		uc:        NewOrderUsecase(tx, orders, orderSkus, coupons, locations, audit),
		tx:        tx,
		orders:    orders,
		orderSkus: orderSkus,
		coupons:   coupons,
		locations: locations,
		audit:     audit,
	}
}

func TestOrderUsecase_PlaceOrder_IdempotentReplay(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	existing := model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPending, TotalAmount: 9999}
	f.orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(existing, true, nil)
	f.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{}, nil)

	out, err := f.uc.PlaceOrder(ctx, 7, PlaceOrderInput{IdempotencyKey: "key-1"})

	assert.NoError(t, err)
	assert.Equal(t, int64(50), out.ID)
	// 再送では新規作成もカウンタ更新も走らない
	f.tx.repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_CartNotCheckedOut(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(model.Order{}, false, nil)
	f.locations.On("FindByUserID", ctx, int64(7)).Return(model.Location{ID: 3, UserID: 7}, nil)
	f.tx.repos.carts.On("FindActiveByUserID", ctx, int64(7)).Return(model.ShoppingCart{ID: 1}, nil)

	_, err := f.uc.PlaceOrder(ctx, 7, PlaceOrderInput{IdempotencyKey: "key-1"})

	assertHTTPError(t, err, http.StatusConflict, "not checked out")
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	now := time.Now()

	f.orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(model.Order{}, false, nil)
	f.locations.On("FindByUserID", ctx, int64(7)).Return(model.Location{ID: 3, UserID: 7}, nil)
	f.tx.repos.carts.On("FindActiveByUserID", ctx, int64(7)).Return(model.ShoppingCart{ID: 1, CheckedOutAt: &now}, nil)
	f.tx.repos.cartItems.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{}, nil)

	_, err := f.uc.PlaceOrder(ctx, 7, PlaceOrderInput{IdempotencyKey: "key-1"})

	assertHTTPError(t, err, http.StatusBadRequest, "cart is empty")
}

func TestOrderUsecase_PlaceOrder_IssuesCouponsAndCounters(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	now := time.Now()

	f.orders.On("FindByIdempotencyKey", ctx, int64(7), "key-1").Return(model.Order{}, false, nil)
	f.locations.On("FindByUserID", ctx, int64(7)).Return(model.Location{ID: 3, UserID: 7}, nil)

	f.tx.repos.carts.On("FindActiveByUserID", ctx, int64(7)).Return(model.ShoppingCart{ID: 1, CheckedOutAt: &now}, nil)
	f.tx.repos.cartItems.On("ListByCartID", ctx, int64(1)).Return([]model.CartItem{
		{ID: 100, CartID: 1, CampaignID: 10, SkuStockID: 30, SkuImagesID: 40, Quantity: 2, UnitPriceSnapshot: 5000},
	}, nil)

	f.tx.repos.orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 7 && o.Status == model.OrderStatusPending && o.IdempotencyKey == "key-1"
	})).Return(int64(50), nil)

	f.tx.repos.campaigns.On("FindByID", ctx, int64(10)).Return(model.Campaign{ID: 10, SkuID: 20}, nil)
	f.tx.repos.skus.On("FindByID", ctx, int64(20)).Return(model.Sku{ID: 20, Price: 5000, SalesTax: 100}, nil)

	f.tx.repos.coupons.On("Create", ctx, mock.MatchedBy(func(c model.Coupon) bool {
		return c.UserID == 7 && c.CampaignID == 10 && c.Code != "" && c.AmountPaid == 10200
	})).Return(model.Coupon{ID: 60}, nil)

	f.tx.repos.orderSkus.On("Create", ctx, mock.MatchedBy(func(l model.OrderSku) bool {
		return l.OrderID == 50 && l.CouponID == 60 && l.Quantity == 2 && l.TotalPrice == 10000 && l.SalesTax == 200
	})).Return(model.OrderSku{ID: 70, OrderID: 50, CouponID: 60, Quantity: 2, TotalPrice: 10000, SalesTax: 200}, nil)

	f.tx.repos.inventory.On("AddSold", ctx, int64(20), int64(2)).Return(nil)

	f.tx.repos.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPending, ShippingFee: 300}, nil)
	// total_amount は明細価格の合計のみ。税・送料は別項目に残る。
	f.tx.repos.orders.On("Update", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalQuantity == 2 && o.TotalTax == 200 && o.TotalAmount == 10000 && o.ShippingFee == 300
	})).Return(nil)

	f.tx.repos.carts.On("Deactivate", ctx, int64(1)).Return(nil)
	f.tx.repos.campaigns.On("ListScheduled", ctx).Return([]model.Campaign{}, nil)

	out, err := f.uc.PlaceOrder(ctx, 7, PlaceOrderInput{IdempotencyKey: "key-1", ShippingFee: 300})

	assert.NoError(t, err)
	assert.Equal(t, int64(50), out.ID)
	assert.Len(t, out.Lines, 1)
	assert.Equal(t, int64(10000), out.TotalAmount)
	assert.Equal(t, int64(200), out.TotalTax)
	assert.Equal(t, int64(300), out.ShippingFee)
	f.tx.repos.inventory.AssertExpectations(t)
	f.tx.repos.coupons.AssertExpectations(t)
	f.tx.repos.carts.AssertCalled(t, "Deactivate", ctx, int64(1))
}

func TestOrderUsecase_TransitionStatus_RejectsInvalidEdge(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	// pending -> delivered は遷移グラフに無い
	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPending}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, false, 50, "delivered")

	assertHTTPError(t, err, http.StatusConflict, "invalid status transition")
}

func TestOrderUsecase_TransitionStatus_UnknownStatus(t *testing.T) {
	f := newOrderFixture()

	_, err := f.uc.TransitionStatus(context.Background(), 7, false, 50, "teleported")

	assertHTTPError(t, err, http.StatusBadRequest, "unknown status")
}

func TestOrderUsecase_TransitionStatus_ShipRequiresAdmin(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPaid}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, false, 50, "shipped")

	assertHTTPError(t, err, http.StatusForbidden, "forbidden")
}

func TestOrderUsecase_TransitionStatus_CancelReleasesStock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPending}, nil)

	f.tx.repos.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{
		{ID: 70, OrderID: 50, CampaignID: 10, SkuStockID: 30, Quantity: 2},
	}, nil)
	f.tx.repos.campaigns.On("FindByID", ctx, int64(10)).Return(model.Campaign{ID: 10, SkuID: 20}, nil)
	f.tx.repos.inventory.On("IncreaseStock", ctx, int64(30), int64(2)).Return(nil)
	f.tx.repos.inventory.On("AddSold", ctx, int64(20), int64(-2)).Return(nil)
	f.tx.repos.orders.On("UpdateStatus", ctx, int64(50), model.OrderStatusCancelled).Return(nil)
	f.tx.repos.campaigns.On("ListScheduled", ctx).Return([]model.Campaign{}, nil)

	f.audit.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus && l.ResourceID == 50
	})).Return(nil)
	f.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, false, 50, "cancelled")

	assert.NoError(t, err)
	f.tx.repos.inventory.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestOrderUsecase_TransitionStatus_ReturnInsideWindow(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	delivered := time.Now().Add(-6 * 24 * time.Hour)
	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusDelivered, BookingDate: delivered}, nil)

	f.tx.repos.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{
		{ID: 70, OrderID: 50, CampaignID: 10, SkuStockID: 30, Quantity: 1},
	}, nil)
	f.tx.repos.campaigns.On("FindByID", ctx, int64(10)).Return(model.Campaign{ID: 10, SkuID: 20}, nil)
	f.tx.repos.inventory.On("IncreaseStock", ctx, int64(30), int64(1)).Return(nil)
	f.tx.repos.inventory.On("AddSold", ctx, int64(20), int64(-1)).Return(nil)
	f.tx.repos.inventory.On("AddDelivered", ctx, int64(20), int64(-1)).Return(nil)
	f.tx.repos.orders.On("UpdateStatus", ctx, int64(50), model.OrderStatusReturned).Return(nil)
	f.tx.repos.campaigns.On("ListScheduled", ctx).Return([]model.Campaign{}, nil)

	f.audit.On("Create", ctx, mock.Anything).Return(nil)
	f.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, false, 50, "returned")

	assert.NoError(t, err)
	f.tx.repos.inventory.AssertExpectations(t)
}

func TestOrderUsecase_TransitionStatus_ReturnWindowExpired(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	delivered := time.Now().Add(-8 * 24 * time.Hour)
	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusDelivered, BookingDate: delivered}, nil)
	f.tx.repos.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, false, 50, "returned")

	assertHTTPError(t, err, http.StatusConflict, "return window expired")
	f.tx.repos.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_TransitionStatus_DeliveredStampsBookingDate(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	old := time.Now().Add(-30 * 24 * time.Hour)
	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusShipped, BookingDate: old}, nil)

	f.tx.repos.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{
		{ID: 70, OrderID: 50, CampaignID: 10, SkuStockID: 30, Quantity: 1},
	}, nil)
	f.tx.repos.campaigns.On("FindByID", ctx, int64(10)).Return(model.Campaign{ID: 10, SkuID: 20}, nil)
	f.tx.repos.inventory.On("AddDelivered", ctx, int64(20), int64(1)).Return(nil)
	// 返品期限の起点が配達時刻に更新されている
	f.tx.repos.orders.On("Update", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.BookingDate.After(old)
	})).Return(nil)
	f.tx.repos.orders.On("UpdateStatus", ctx, int64(50), model.OrderStatusDelivered).Return(nil)
	f.tx.repos.campaigns.On("ListScheduled", ctx).Return([]model.Campaign{}, nil)

	f.audit.On("Create", ctx, mock.Anything).Return(nil)
	f.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{}, nil)

	_, err := f.uc.TransitionStatus(ctx, 7, true, 50, "delivered")

	assert.NoError(t, err)
	f.tx.repos.orders.AssertExpectations(t)
}

func TestOrderUsecase_GetOrder_OtherUsersOrderHidden(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 99}, nil)

	_, err := f.uc.GetOrder(ctx, 7, false, 50)

	assertHTTPError(t, err, http.StatusNotFound, "order not found")
}

func TestOrderUsecase_DeleteOrder_RewindsCounters(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(50)).Return(model.Order{ID: 50, UserID: 7, Status: model.OrderStatusPending}, nil)

	f.tx.repos.orderSkus.On("ListByOrderID", ctx, int64(50)).Return([]model.OrderSku{
		{ID: 70, OrderID: 50, CampaignID: 10, SkuStockID: 30, CouponID: 60, Quantity: 2},
	}, nil)
	f.tx.repos.campaigns.On("FindByID", ctx, int64(10)).Return(model.Campaign{ID: 10, SkuID: 20}, nil)
	f.tx.repos.inventory.On("IncreaseStock", ctx, int64(30), int64(2)).Return(nil)
	f.tx.repos.inventory.On("AddSold", ctx, int64(20), int64(-2)).Return(nil)
	f.tx.repos.coupons.On("DeleteByID", ctx, int64(60)).Return(nil)
	f.tx.repos.orderSkus.On("DeleteByID", ctx, int64(70)).Return(nil)
	f.tx.repos.orders.On("Delete", ctx, int64(50)).Return(nil)
	f.tx.repos.campaigns.On("ListScheduled", ctx).Return([]model.Campaign{}, nil)

	err := f.uc.DeleteOrder(ctx, 7, false, 50)

	assert.NoError(t, err)
	f.tx.repos.inventory.AssertExpectations(t)
	f.tx.repos.coupons.AssertExpectations(t)
}
