package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

type OrderUsecase struct {
	tx           repo.TransactionManager
	orderRepo    repo.OrderRepository
	orderSkuRepo repo.OrderSkuRepository
	couponRepo   repo.CouponRepository
	locationRepo repo.LocationRepository
	auditRepo    repo.AuditLogRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderSkuRepo repo.OrderSkuRepository,
	couponRepo repo.CouponRepository,
	locationRepo repo.LocationRepository,
	auditRepo repo.AuditLogRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:           tx,
		orderRepo:    orderRepo,
		orderSkuRepo: orderSkuRepo,
		couponRepo:   couponRepo,
		locationRepo: locationRepo,
		auditRepo:    auditRepo,
	}
}

type OrderLineResponse struct {
	ID          int64 `json:"id"`
	CouponID    int64 `json:"coupon_id"`
	CampaignID  int64 `json:"campaign_id"`
	SkuStockID  int64 `json:"sku_stock_id"`
	SkuImagesID int64 `json:"sku_images_id"`
	Quantity    int64 `json:"quantity"`
	TotalPrice  int64 `json:"total_price"`
	SalesTax    int64 `json:"sales_tax"`
}

type OrderResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"user_id"`
	LocationID    int64               `json:"location_id"`
	Status        model.OrderStatus   `json:"status"`
	TotalQuantity int64               `json:"total_quantity"`
	TotalTax      int64               `json:"total_tax"`
	ShippingFee   int64               `json:"shipping_fee"`
	TotalAmount   int64               `json:"total_amount"`
	BookingDate   time.Time           `json:"booking_date"`
	Lines         []OrderLineResponse `json:"order_skus"`
}

type PlaceOrderInput struct {
	LocationID     int64
	ShippingFee    int64
	IdempotencyKey string
}

type UpdateOrderLineInput struct {
	LineID   int64
	Quantity int64
}

type UpdateOrderInput struct {
	LocationID  *int64
	ShippingFee *int64
	Lines       []UpdateOrderLineInput
}

func newOrderLineView(line model.OrderSku) OrderLineResponse {
	return OrderLineResponse{
		ID:          line.ID,
		CouponID:    line.CouponID,
		CampaignID:  line.CampaignID,
		SkuStockID:  line.SkuStockID,
		SkuImagesID: line.SkuImagesID,
		Quantity:    line.Quantity,
		TotalPrice:  line.TotalPrice,
		SalesTax:    line.SalesTax,
	}
}

func newOrderView(order model.Order, lines []model.OrderSku) OrderResponse {
	views := make([]OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		views = append(views, newOrderLineView(l))
	}
	return OrderResponse{
		ID:            order.ID,
		UserID:        order.UserID,
		LocationID:    order.LocationID,
		Status:        order.Status,
		TotalQuantity: order.TotalQuantity,
		TotalTax:      order.TotalTax,
		ShippingFee:   order.ShippingFee,
		TotalAmount:   order.TotalAmount,
		BookingDate:   order.BookingDate,
		Lines:         views,
	}
}

// PlaceOrder はチェックアウト済みカートから注文を確定する。
// 明細1件につきクーポンを1枚発行し、number_sold を加算。
// 同じ冪等キーの再送は既存の注文をそのまま返す。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderResponse, error) {
	if userID <= 0 {
		return OrderResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.IdempotencyKey == "" {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "idempotency key required")
	}
	if in.ShippingFee < 0 {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid shipping fee")
	}

	// 再送チェック
	existing, found, err := u.orderRepo.FindByIdempotencyKey(ctx, userID, in.IdempotencyKey)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		return u.buildView(ctx, existing)
	}

	location, err := u.resolveLocation(ctx, userID, in.LocationID)
	if err != nil {
		return OrderResponse{}, err
	}

	var out OrderResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "no active cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.CheckedOutAt == nil {
			return NewHTTPError(http.StatusConflict, "cart is not checked out")
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		now := time.Now()

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:         userID,
			LocationID:     location.ID,
			Status:         model.OrderStatusPending,
			ShippingFee:    in.ShippingFee,
			BookingDate:    now,
			IdempotencyKey: in.IdempotencyKey,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		var totalQty, totalTax, totalAmount int64
		lines := make([]model.OrderSku, 0, len(items))

		for _, item := range items {
			campaign, err := r.Campaigns().FindByID(ctx, item.CampaignID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusConflict, "campaign no longer exists")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			sku, err := r.Skus().FindByID(ctx, campaign.SkuID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			linePrice := item.UnitPriceSnapshot * item.Quantity
			lineTax := sku.SalesTax * item.Quantity

			coupon, err := r.Coupons().Create(ctx, model.Coupon{
				UserID:      userID,
				CampaignID:  item.CampaignID,
				SkuStockID:  item.SkuStockID,
				SkuImagesID: item.SkuImagesID,
				Code:        model.GenerateCouponCode(userID, item.CampaignID, item.SkuStockID, item.SkuImagesID, now),
				AmountPaid:  linePrice + lineTax,
				PurchasedAt: now,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			line, err := r.OrderSkus().Create(ctx, model.OrderSku{
				OrderID:     orderID,
				CouponID:    coupon.ID,
				CampaignID:  item.CampaignID,
				SkuStockID:  item.SkuStockID,
				SkuImagesID: item.SkuImagesID,
				Quantity:    item.Quantity,
				TotalPrice:  linePrice,
				SalesTax:    lineTax,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			// 在庫はカート投入時に引当済み。ここでは販売数だけ進める。
			if err := r.Inventory().AddSold(ctx, sku.ID, item.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			totalQty += item.Quantity
			totalTax += lineTax
			totalAmount += linePrice
			lines = append(lines, line)
		}

		order, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		// 税・送料は別項目。total_amount は明細価格の合計だけを持つ。
		order.TotalQuantity = totalQty
		order.TotalTax = totalTax
		order.TotalAmount = totalAmount
		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Carts().Deactivate(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 販売数が動いたのでキャンペーンの活性状態を再計算
		if err := refreshCampaignsTx(ctx, r, now); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = newOrderView(order, lines)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) (OrderResponse, error) {
	order, err := u.findAuthorized(ctx, userID, isAdmin, orderID)
	if err != nil {
		return OrderResponse{}, err
	}
	return u.buildView(ctx, order)
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, status string) ([]OrderResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	parsed, err := parseOptionalStatus(status)
	if err != nil {
		return nil, err
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID, parsed)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, orders)
}

func (u *OrderUsecase) ListAllOrders(ctx context.Context, status string) ([]OrderResponse, error) {
	parsed, err := parseOptionalStatus(status)
	if err != nil {
		return nil, err
	}

	orders, err := u.orderRepo.ListAll(ctx, parsed)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, orders)
}

// UpdateOrder は配送先・送料・明細数量の変更。pending の間だけ許す。
// 数量は差分で在庫と販売数に反映し、0 は明細ごと削除。
func (u *OrderUsecase) UpdateOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64, in UpdateOrderInput) (OrderResponse, error) {
	order, err := u.findAuthorized(ctx, userID, isAdmin, orderID)
	if err != nil {
		return OrderResponse{}, err
	}
	if order.Status != model.OrderStatusPending {
		return OrderResponse{}, NewHTTPError(http.StatusConflict, "only pending orders can be updated")
	}

	if in.LocationID != nil {
		location, err := u.resolveLocation(ctx, order.UserID, *in.LocationID)
		if err != nil {
			return OrderResponse{}, err
		}
		order.LocationID = location.ID
	}
	if in.ShippingFee != nil {
		if *in.ShippingFee < 0 {
			return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "invalid shipping fee")
		}
		order.ShippingFee = *in.ShippingFee
	}

	var out OrderResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, change := range in.Lines {
			if change.Quantity < 0 {
				return NewHTTPError(http.StatusBadRequest, "invalid quantity")
			}

			line, err := r.OrderSkus().FindByID(ctx, change.LineID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "order line not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if line.OrderID != order.ID {
				return NewHTTPError(http.StatusNotFound, "order line not found")
			}

			campaign, err := r.Campaigns().FindByID(ctx, line.CampaignID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			delta := change.Quantity - line.Quantity
			switch {
			case delta == 0:
				continue
			case change.Quantity == 0:
				// 明細削除：在庫戻し、販売数減、クーポン破棄
				if err := r.Inventory().IncreaseStock(ctx, line.SkuStockID, line.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddSold(ctx, campaign.SkuID, -line.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Coupons().DeleteByID(ctx, line.CouponID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.OrderSkus().DeleteByID(ctx, line.ID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				continue
			case delta > 0:
				ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.SkuStockID, delta)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if !ok {
					return NewHTTPError(http.StatusConflict, "not enough stock")
				}
				if err := r.Inventory().AddSold(ctx, campaign.SkuID, delta); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			default:
				if err := r.Inventory().IncreaseStock(ctx, line.SkuStockID, -delta); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddSold(ctx, campaign.SkuID, delta); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

			unitPrice := line.TotalPrice / line.Quantity
			unitTax := line.SalesTax / line.Quantity
			line.Quantity = change.Quantity
			line.TotalPrice = unitPrice * change.Quantity
			line.SalesTax = unitTax * change.Quantity
			if err := r.OrderSkus().Update(ctx, line); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		lines, err := r.OrderSkus().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.TotalQuantity = 0
		order.TotalTax = 0
		order.TotalAmount = 0
		for _, l := range lines {
			order.TotalQuantity += l.Quantity
			order.TotalTax += l.SalesTax
			order.TotalAmount += l.TotalPrice
		}

		if err := r.Orders().Update(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := refreshCampaignsTx(ctx, r, time.Now()); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = newOrderView(order, lines)
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}
	return out, nil
}

// TransitionStatus は遷移グラフに沿ったステータス変更。
// cancelled / delivered / returned は在庫・カウンタの副作用を伴う。
func (u *OrderUsecase) TransitionStatus(ctx context.Context, actorID int64, isAdmin bool, orderID int64, nextRaw string) (OrderResponse, error) {
	next, ok := model.ParseOrderStatus(nextRaw)
	if !ok {
		return OrderResponse{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	order, err := u.findAuthorized(ctx, actorID, isAdmin, orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		return OrderResponse{}, NewHTTPError(http.StatusConflict, "invalid status transition")
	}

	// 出荷と配達完了は管理者のみ
	if (next == model.OrderStatusShipped || next == model.OrderStatusDelivered) && !isAdmin {
		return OrderResponse{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	prev := order.Status
	now := time.Now()

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.OrderSkus().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch next {
		case model.OrderStatusCancelled:
			for _, l := range lines {
				campaign, err := r.Campaigns().FindByID(ctx, l.CampaignID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().IncreaseStock(ctx, l.SkuStockID, l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddSold(ctx, campaign.SkuID, -l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

		case model.OrderStatusDelivered:
			for _, l := range lines {
				campaign, err := r.Campaigns().FindByID(ctx, l.CampaignID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddDelivered(ctx, campaign.SkuID, l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			// 返品期限の起点を配達日時にする
			order.BookingDate = now

		case model.OrderStatusReturned:
			if now.Sub(order.BookingDate) > model.ReturnWindow {
				return NewHTTPError(http.StatusConflict, "return window expired")
			}
			for _, l := range lines {
				campaign, err := r.Campaigns().FindByID(ctx, l.CampaignID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().IncreaseStock(ctx, l.SkuStockID, l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddSold(ctx, campaign.SkuID, -l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Inventory().AddDelivered(ctx, campaign.SkuID, -l.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if next == model.OrderStatusDelivered {
			// booking_date の再起点を保存
			if err := r.Orders().Update(ctx, order); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.Status = next
		if err := r.Orders().UpdateStatus(ctx, order.ID, next); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		switch next {
		case model.OrderStatusCancelled, model.OrderStatusDelivered, model.OrderStatusReturned:
			if err := refreshCampaignsTx(ctx, r, now); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})

	if err != nil {
		return OrderResponse{}, err
	}

	u.writeStatusAudit(ctx, actorID, order.ID, prev, next)
	return u.buildView(ctx, order)
}

// DeleteOrder は注文の物理削除。在庫・販売数を巻き戻し、クーポンも破棄する。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, userID int64, isAdmin bool, orderID int64) error {
	order, err := u.findAuthorized(ctx, userID, isAdmin, orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPending && !isAdmin {
		return NewHTTPError(http.StatusConflict, "only pending orders can be deleted")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.OrderSkus().ListByOrderID(ctx, order.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		for _, l := range lines {
			campaign, err := r.Campaigns().FindByID(ctx, l.CampaignID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Inventory().IncreaseStock(ctx, l.SkuStockID, l.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Inventory().AddSold(ctx, campaign.SkuID, -l.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.Coupons().DeleteByID(ctx, l.CouponID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if err := r.OrderSkus().DeleteByID(ctx, l.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().Delete(ctx, order.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return refreshCampaignsTx(ctx, r, time.Now())
	})
}

func (u *OrderUsecase) MyCoupons(ctx context.Context, userID int64) ([]model.Coupon, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	coupons, err := u.couponRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return coupons, nil
}

func (u *OrderUsecase) findAuthorized(ctx context.Context, userID int64, isAdmin bool, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID && !isAdmin {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	return order, nil
}

// locationID==0 ならユーザーの登録済み配送先を使う。
func (u *OrderUsecase) resolveLocation(ctx context.Context, userID int64, locationID int64) (model.Location, error) {
	if locationID == 0 {
		location, err := u.locationRepo.FindByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Location{}, NewHTTPError(http.StatusBadRequest, "shipping address required")
		}
		if err != nil {
			return model.Location{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return location, nil
	}

	location, err := u.locationRepo.FindByID(ctx, locationID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Location{}, NewHTTPError(http.StatusNotFound, "location not found")
	}
	if err != nil {
		return model.Location{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if location.UserID != userID {
		return model.Location{}, NewHTTPError(http.StatusForbidden, "location does not belong to user")
	}
	return location, nil
}

func (u *OrderUsecase) writeStatusAudit(ctx context.Context, actorID int64, orderID int64, prev, next model.OrderStatus) {
	before, _ := json.Marshal(map[string]string{"status": string(prev)})
	after, _ := json.Marshal(map[string]string{"status": string(next)})

	// 監査ログの失敗で本処理は落とさない
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateOrderStatus,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    time.Now(),
	})
}

func (u *OrderUsecase) buildView(ctx context.Context, order model.Order) (OrderResponse, error) {
	lines, err := u.orderSkuRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return newOrderView(order, lines), nil
}

func (u *OrderUsecase) buildViews(ctx context.Context, orders []model.Order) ([]OrderResponse, error) {
	views := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		view, err := u.buildView(ctx, o)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func parseOptionalStatus(status string) (model.OrderStatus, error) {
	if status == "" {
		return "", nil
	}
	parsed, ok := model.ParseOrderStatus(status)
	if !ok {
		return "", NewHTTPError(http.StatusBadRequest, "unknown status")
	}
	return parsed, nil
}
