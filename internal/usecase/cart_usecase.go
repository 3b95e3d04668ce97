package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

// CartUsecase はカートの業務ロジック。
// 追加時点で在庫を引き当て、削除・減量で同じ分だけ戻す。
// 在庫を触る更新は必ずトランザクション内で行う。
type CartUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	campaignRepo repo.CampaignRepository
	skuRepo      repo.SkuRepository
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	campaignRepo repo.CampaignRepository,
	skuRepo repo.SkuRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		campaignRepo: campaignRepo,
		skuRepo:      skuRepo,
	}
}

type CartItemResponse struct {
	ID          int64  `json:"id"`
	CampaignID  int64  `json:"campaign_id"`
	SkuStockID  int64  `json:"sku_stock_id"`
	SkuImagesID int64  `json:"sku_images_id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
}

type CartResponse struct {
	CartID       int64              `json:"cart_id"`
	CheckedOutAt *time.Time         `json:"checked_out_at"`
	Items        []CartItemResponse `json:"items"`
	Total        int64              `json:"total"`
}

type AddCartInput struct {
	CampaignID  int64
	SkuStockID  int64
	SkuImagesID int64
	Quantity    int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// カート明細のビューを読み込み済みエンティティから組み立てる。
// ここで再クエリはしない。
func newCartItemView(item model.CartItem, sku model.Sku) CartItemResponse {
	return CartItemResponse{
		ID:          item.ID,
		CampaignID:  item.CampaignID,
		SkuStockID:  item.SkuStockID,
		SkuImagesID: item.SkuImagesID,
		Name:        sku.Name,
		Price:       item.UnitPriceSnapshot,
		Quantity:    item.Quantity,
	}
}

// GetCart はカート取得（無ければACTIVEを作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// AddToCart は在庫を引き当ててカートへ追加。
// 同一在庫の明細が既にあれば数量更新を使わせる。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CampaignID <= 0 || in.SkuStockID <= 0 || in.SkuImagesID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	campaign, err := u.campaignRepo.FindByID(ctx, in.CampaignID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "campaign not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	sku, err := u.skuRepo.FindByID(ctx, campaign.SkuID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "sku not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if cart.CheckedOutAt != nil {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "cart already checked out")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		stock, err := r.Inventory().FindStock(ctx, in.SkuStockID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "stock not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if stock.SkuID != sku.ID {
			return NewHTTPError(http.StatusBadRequest, "stock does not belong to campaign sku")
		}

		// 重複は数量更新に誘導
		_, err = r.CartItems().FindByCartAndStock(ctx, cart.ID, in.SkuStockID)
		if err == nil {
			return NewHTTPError(http.StatusConflict, "item already in cart, update quantity instead")
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 引当（足りなければfalse）
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, in.SkuStockID, in.Quantity)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			return NewHTTPError(http.StatusConflict, "not enough stock")
		}

		//単価は追加時点のスナップショット
		_, err = r.CartItems().Create(ctx, model.CartItem{
			CartID:            cart.ID,
			CampaignID:        in.CampaignID,
			SkuStockID:        in.SkuStockID,
			SkuImagesID:       in.SkuImagesID,
			Quantity:          in.Quantity,
			UnitPriceSnapshot: sku.Price,
			ReservationDate:   time.Now(),
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return CartResponse{}, err
	}
	return u.buildCartResponse(ctx, cart)
}

// 数量変更。前回引当量との差分だけ在庫を動かす（絶対値で再計算しない）。
// 0 は削除扱いで全量を戻す。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := r.Carts().FindByID(ctx, item.CartID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.CheckedOutAt != nil {
			return NewHTTPError(http.StatusConflict, "cart already checked out")
		}

		switch {
		case in.Quantity < item.Quantity:
			// 減量分だけ戻す
			if err := r.Inventory().IncreaseStock(ctx, item.SkuStockID, item.Quantity-in.Quantity); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

		case in.Quantity > item.Quantity:
			// 増量分だけ引き当てる
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, item.SkuStockID, in.Quantity-item.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "not enough stock")
			}
		}

		if in.Quantity == 0 {
			if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			return nil
		}

		if err := r.CartItems().UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart)
}

// 明細削除。引当の全量を在庫へ戻す。
func (u *CartUsecase) RemoveCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cart, err := r.Carts().FindByID(ctx, item.CartID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.CheckedOutAt != nil {
			return NewHTTPError(http.StatusConflict, "cart already checked out")
		}

		if err := r.Inventory().IncreaseStock(ctx, item.SkuStockID, item.Quantity); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart)
}

// Checkout は checked_out_at を打刻して明細を凍結する。
// 注文作成は別ステップ（OrderUsecase.PlaceOrder）。
func (u *CartUsecase) Checkout(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if cart.CheckedOutAt != nil {
		return CartResponse{}, NewHTTPError(http.StatusConflict, "cart already checked out")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	now := time.Now()
	if err := u.cartRepo.SetCheckedOut(ctx, cart.ID, now); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// 同時チェックアウトで先を越された
			return CartResponse{}, NewHTTPError(http.StatusConflict, "cart already checked out")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart.CheckedOutAt = &now
	return u.buildCartResponse(ctx, cart)
}

// 明細を読み込んでビューへ組み立て。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.ShoppingCart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		campaign, err := u.campaignRepo.FindByID(ctx, it.CampaignID)
		if err != nil {
			continue
		}
		sku, err := u.skuRepo.FindByID(ctx, campaign.SkuID)
		if err != nil {
			continue
		}

		respItems = append(respItems, newCartItemView(it, sku))
		total += it.UnitPriceSnapshot * it.Quantity
	}

	return CartResponse{
		CartID:       cart.ID,
		CheckedOutAt: cart.CheckedOutAt,
		Items:        respItems,
		Total:        total,
	}, nil
}
