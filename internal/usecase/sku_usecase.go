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

type SkuUsecase struct {
	tx            repo.TransactionManager
	skuRepo       repo.SkuRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

func NewSkuUsecase(
	tx repo.TransactionManager,
	skuRepo repo.SkuRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *SkuUsecase {
	return &SkuUsecase{
		tx:            tx,
		skuRepo:       skuRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

type SkuStockInput struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int64  `json:"stock"`
}

type RegisterSkuInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       int64           `json:"price"`
	SalesTax    int64           `json:"sales_tax"`
	Quantity    int64           `json:"quantity"`
	SizeChart   string          `json:"size_chart"`
	Images      []string        `json:"images"`
	Stocks      []SkuStockInput `json:"stocks"`
}

type UpdateSkuInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Price       *int64  `json:"price"`
	SalesTax    *int64  `json:"sales_tax"`
	Quantity    *int64  `json:"quantity"`
	SizeChart   *string `json:"size_chart"`
}

type SkuResponse struct {
	Sku    model.Sku        `json:"sku"`
	Images []model.SkuImage `json:"images"`
	Stocks []model.SkuStock `json:"stocks"`
}

// Register は商品・画像・在庫バリアントをまとめて登録する。
func (u *SkuUsecase) Register(ctx context.Context, userID int64, in RegisterSkuInput) (SkuResponse, error) {
	if userID <= 0 {
		return SkuResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Name == "" || in.Price <= 0 || in.Quantity <= 0 {
		return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if in.SalesTax < 0 {
		return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid sales tax")
	}
	for _, s := range in.Stocks {
		if s.Stock < 0 {
			return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
		}
	}

	var out SkuResponse

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sku, err := r.Skus().Create(ctx, model.Sku{
			UserID:      userID,
			Name:        in.Name,
			Description: in.Description,
			Category:    in.Category,
			Price:       in.Price,
			SalesTax:    in.SalesTax,
			Quantity:    in.Quantity,
			SizeChart:   in.SizeChart,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		images := make([]model.SkuImage, 0, len(in.Images))
		for _, url := range in.Images {
			img, err := r.Skus().CreateImage(ctx, model.SkuImage{SkuID: sku.ID, Image: url})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			images = append(images, img)
		}

		stocks := make([]model.SkuStock, 0, len(in.Stocks))
		for _, s := range in.Stocks {
			stock, err := r.Skus().CreateStock(ctx, model.SkuStock{
				SkuID: sku.ID,
				Size:  s.Size,
				Color: s.Color,
				Stock: s.Stock,
			})
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			stocks = append(stocks, stock)
		}

		out = SkuResponse{Sku: sku, Images: images, Stocks: stocks}
		return nil
	})

	if err != nil {
		return SkuResponse{}, err
	}
	return out, nil
}

func (u *SkuUsecase) Get(ctx context.Context, skuID int64) (SkuResponse, error) {
	if skuID <= 0 {
		return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	sku, err := u.skuRepo.FindByID(ctx, skuID)
	if errors.Is(err, repo.ErrNotFound) {
		return SkuResponse{}, NewHTTPError(http.StatusNotFound, "sku not found")
	}
	if err != nil {
		return SkuResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildView(ctx, sku)
}

func (u *SkuUsecase) List(ctx context.Context) ([]SkuResponse, error) {
	skus, err := u.skuRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, skus)
}

func (u *SkuUsecase) ListMine(ctx context.Context, userID int64) ([]SkuResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	skus, err := u.skuRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, skus)
}

func (u *SkuUsecase) Update(ctx context.Context, userID int64, skuID int64, in UpdateSkuInput) (SkuResponse, error) {
	sku, err := u.findOwned(ctx, userID, skuID)
	if err != nil {
		return SkuResponse{}, err
	}

	if in.Name != nil {
		sku.Name = *in.Name
	}
	if in.Description != nil {
		sku.Description = *in.Description
	}
	if in.Category != nil {
		sku.Category = *in.Category
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		sku.Price = *in.Price
	}
	if in.SalesTax != nil {
		if *in.SalesTax < 0 {
			return SkuResponse{}, NewHTTPError(http.StatusBadRequest, "invalid sales tax")
		}
		sku.SalesTax = *in.SalesTax
	}
	if in.Quantity != nil {
		// 販売枠は既に売れた数を下回れない
		if *in.Quantity < sku.NumberSold {
			return SkuResponse{}, NewHTTPError(http.StatusConflict, "quantity below number sold")
		}
		sku.Quantity = *in.Quantity
	}
	if in.SizeChart != nil {
		sku.SizeChart = *in.SizeChart
	}

	if err := u.skuRepo.Update(ctx, sku); err != nil {
		return SkuResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildView(ctx, sku)
}

// UpdateStock はバリアント在庫の絶対値指定。差分で増減を反映する。
// 増減どちらもDB側の条件付きUPDATEを通すので負在庫にはならない。
func (u *SkuUsecase) UpdateStock(ctx context.Context, userID int64, skuID int64, skuStockID int64, newStock int64) (model.SkuStock, error) {
	if newStock < 0 {
		return model.SkuStock{}, NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	if _, err := u.findOwned(ctx, userID, skuID); err != nil {
		return model.SkuStock{}, err
	}

	stock, err := u.inventoryRepo.FindStock(ctx, skuStockID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.SkuStock{}, NewHTTPError(http.StatusNotFound, "stock not found")
	}
	if err != nil {
		return model.SkuStock{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if stock.SkuID != skuID {
		return model.SkuStock{}, NewHTTPError(http.StatusNotFound, "stock not found")
	}

	delta := newStock - stock.Stock
	switch {
	case delta > 0:
		if err := u.inventoryRepo.IncreaseStock(ctx, skuStockID, delta); err != nil {
			return model.SkuStock{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case delta < 0:
		ok, err := u.inventoryRepo.DecreaseStockIfEnough(ctx, skuStockID, -delta)
		if err != nil {
			return model.SkuStock{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !ok {
			// 並行して引当が走った。取り直してもらう。
			return model.SkuStock{}, NewHTTPError(http.StatusConflict, "stock changed concurrently")
		}
	}

	u.writeStockAudit(ctx, userID, skuStockID, stock.Stock, newStock)

	stock.Stock = newStock
	return stock, nil
}

func (u *SkuUsecase) Delete(ctx context.Context, userID int64, isAdmin bool, skuID int64) error {
	sku, err := u.skuRepo.FindByID(ctx, skuID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "sku not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if sku.UserID != userID && !isAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.skuRepo.Delete(ctx, skuID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *SkuUsecase) findOwned(ctx context.Context, userID int64, skuID int64) (model.Sku, error) {
	if userID <= 0 {
		return model.Sku{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	sku, err := u.skuRepo.FindByID(ctx, skuID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Sku{}, NewHTTPError(http.StatusNotFound, "sku not found")
	}
	if err != nil {
		return model.Sku{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if sku.UserID != userID {
		return model.Sku{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return sku, nil
}

func (u *SkuUsecase) writeStockAudit(ctx context.Context, actorID int64, skuStockID int64, before, after int64) {
	beforeJSON, _ := json.Marshal(map[string]int64{"stock": before})
	afterJSON, _ := json.Marshal(map[string]int64{"stock": after})

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceSku,
		ResourceID:   skuStockID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	})
}

func (u *SkuUsecase) buildView(ctx context.Context, sku model.Sku) (SkuResponse, error) {
	images, err := u.skuRepo.ListImagesBySkuID(ctx, sku.ID)
	if err != nil {
		return SkuResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	stocks, err := u.skuRepo.ListStockBySkuID(ctx, sku.ID)
	if err != nil {
		return SkuResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SkuResponse{Sku: sku, Images: images, Stocks: stocks}, nil
}

func (u *SkuUsecase) buildViews(ctx context.Context, skus []model.Sku) ([]SkuResponse, error) {
	views := make([]SkuResponse, 0, len(skus))
	for _, s := range skus {
		view, err := u.buildView(ctx, s)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
