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

// クロージング一覧のキャッシュ。実体はredis（internal/cache）。
type ClosingCache interface {
	GetClosing(ctx context.Context) ([]byte, bool)
	SetClosing(ctx context.Context, payload []byte)
	InvalidateClosing(ctx context.Context)
}

type CampaignUsecase struct {
	tx           repo.TransactionManager
	campaignRepo repo.CampaignRepository
	skuRepo      repo.SkuRepository
	prizeRepo    repo.PrizeRepository
	drawRepo     repo.DrawRepository

	//nilなら素通し
	cache ClosingCache
}

func NewCampaignUsecase(
	tx repo.TransactionManager,
	campaignRepo repo.CampaignRepository,
	skuRepo repo.SkuRepository,
	prizeRepo repo.PrizeRepository,
	drawRepo repo.DrawRepository,
	cache ClosingCache,
) *CampaignUsecase {
	return &CampaignUsecase{
		tx:           tx,
		campaignRepo: campaignRepo,
		skuRepo:      skuRepo,
		prizeRepo:    prizeRepo,
		drawRepo:     drawRepo,
		cache:        cache,
	}
}

type CampaignResponse struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	Threshold   int         `json:"threshold"`
	IsActive    bool        `json:"is_active"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	Sku         model.Sku   `json:"sku"`
	Prize       model.Prize `json:"prize"`
	Draw        model.Draw  `json:"draw"`
}

type RegisterCampaignInput struct {
	Name        string
	Description string
	Image       string
	Threshold   int
	SkuID       int64
	PrizeID     int64
	VideoURL    string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateCampaignInput struct {
	Name        *string
	Description *string
	Image       *string
	Threshold   *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// 読み込み済みエンティティからのビュー組み立て。再クエリしない。
func newCampaignView(c model.Campaign, sku model.Sku, prize model.Prize, draw model.Draw) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.Image,
		Threshold:   c.Threshold,
		IsActive:    c.IsActive,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		Sku:         sku,
		Prize:       prize,
		Draw:        draw,
	}
}

// Register はキャンペーンと対の抽選を同一トランザクションで作成。
// 作成直後にライフサイクルを1回流して活性状態を確定させる。
func (u *CampaignUsecase) Register(ctx context.Context, userID int64, in RegisterCampaignInput) (CampaignResponse, error) {
	if userID <= 0 {
		return CampaignResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Name == "" || in.SkuID <= 0 || in.PrizeID <= 0 {
		return CampaignResponse{}, NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if in.Threshold == 0 {
		in.Threshold = 80 // default 80%
	}
	if in.Threshold < 0 || in.Threshold > 100 {
		return CampaignResponse{}, NewHTTPError(http.StatusBadRequest, "invalid threshold")
	}

	sku, err := u.skuRepo.FindByID(ctx, in.SkuID)
	if errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusNotFound, "sku not found")
	}
	if err != nil {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if sku.UserID != userID {
		return CampaignResponse{}, NewHTTPError(http.StatusForbidden, "sku does not belong to user")
	}

	prize, err := u.prizeRepo.FindByID(ctx, in.PrizeID)
	if errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusNotFound, "prize not found")
	}
	if err != nil {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var out CampaignResponse

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		campaign, err := r.Campaigns().Create(ctx, model.Campaign{
			UserID:      userID,
			SkuID:       in.SkuID,
			PrizeID:     in.PrizeID,
			Name:        in.Name,
			Description: in.Description,
			Image:       in.Image,
			Threshold:   in.Threshold,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		draw, err := r.Draws().Create(ctx, model.Draw{
			CampaignID: campaign.ID,
			VideoURL:   in.VideoURL,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if campaign.StartDate != nil {
			if err := refreshOneCampaignTx(ctx, r, campaign, time.Now()); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			campaign, err = r.Campaigns().FindByID(ctx, campaign.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			draw, err = r.Draws().FindByCampaignID(ctx, campaign.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = newCampaignView(campaign, sku, prize, draw)
		return nil
	})

	if err != nil {
		return CampaignResponse{}, err
	}

	u.invalidateClosing(ctx)
	return out, nil
}

func (u *CampaignUsecase) Get(ctx context.Context, campaignID int64) (CampaignResponse, error) {
	if campaignID <= 0 {
		return CampaignResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	campaign, err := u.campaignRepo.FindByID(ctx, campaignID)
	if errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusNotFound, "campaign not found")
	}
	if err != nil {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildView(ctx, campaign)
}

func (u *CampaignUsecase) List(ctx context.Context) ([]CampaignResponse, error) {
	campaigns, err := u.campaignRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, campaigns), nil
}

func (u *CampaignUsecase) ListMine(ctx context.Context, userID int64) ([]CampaignResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	campaigns, err := u.campaignRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildViews(ctx, campaigns), nil
}

// Closing は「売り切れ間近」の一覧。redisにTTL付きで載せる。
func (u *CampaignUsecase) Closing(ctx context.Context) ([]CampaignResponse, error) {
	if u.cache != nil {
		if payload, ok := u.cache.GetClosing(ctx); ok {
			var cached []CampaignResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	campaigns, err := u.campaignRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	closing := make([]CampaignResponse, 0)
	for _, c := range campaigns {
		sku, err := u.skuRepo.FindByID(ctx, c.SkuID)
		if err != nil {
			continue
		}
		if !IsClosing(c, sku) {
			continue
		}

		view, err := u.buildView(ctx, c)
		if err != nil {
			continue
		}
		closing = append(closing, view)
	}

	if u.cache != nil {
		if payload, err := json.Marshal(closing); err == nil {
			u.cache.SetClosing(ctx, payload)
		}
	}
	return closing, nil
}

func (u *CampaignUsecase) Update(ctx context.Context, userID int64, campaignID int64, in UpdateCampaignInput) (CampaignResponse, error) {
	if userID <= 0 {
		return CampaignResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	campaign, err := u.campaignRepo.FindByID(ctx, campaignID)
	if errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusNotFound, "campaign not found")
	}
	if err != nil {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if campaign.UserID != userID {
		return CampaignResponse{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if in.Name != nil {
		campaign.Name = *in.Name
	}
	if in.Description != nil {
		campaign.Description = *in.Description
	}
	if in.Image != nil {
		campaign.Image = *in.Image
	}
	if in.Threshold != nil {
		if *in.Threshold < 0 || *in.Threshold > 100 {
			return CampaignResponse{}, NewHTTPError(http.StatusBadRequest, "invalid threshold")
		}
		campaign.Threshold = *in.Threshold
	}
	if in.StartDate != nil {
		campaign.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		campaign.EndDate = in.EndDate
	}

	if err := u.campaignRepo.Update(ctx, campaign); err != nil {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateClosing(ctx)
	return u.buildView(ctx, campaign)
}

// Delete はキャンペーンと対の抽選を同一トランザクションで削除。
func (u *CampaignUsecase) Delete(ctx context.Context, userID int64, isAdmin bool, campaignID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	campaign, err := u.campaignRepo.FindByID(ctx, campaignID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "campaign not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if campaign.UserID != userID && !isAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		draw, err := r.Draws().FindByCampaignID(ctx, campaignID)
		if err == nil {
			if err := r.Draws().Delete(ctx, draw.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Campaigns().Delete(ctx, campaignID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return err
	}

	u.invalidateClosing(ctx)
	return nil
}

// Status は1件だけライフサイクルを流して最新の状態を返す。
func (u *CampaignUsecase) Status(ctx context.Context, campaignID int64) (CampaignResponse, error) {
	if campaignID <= 0 {
		return CampaignResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Campaign

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		campaign, err := r.Campaigns().FindByID(ctx, campaignID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "campaign not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if campaign.StartDate != nil {
			if err := refreshOneCampaignTx(ctx, r, campaign, time.Now()); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			campaign, err = r.Campaigns().FindByID(ctx, campaignID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = campaign
		return nil
	})

	if err != nil {
		return CampaignResponse{}, err
	}

	u.invalidateClosing(ctx)
	return u.buildView(ctx, out)
}

// RefreshCampaigns は全キャンペーンのライフサイクル再計算。冪等。
// ワーカーからも管理APIからも呼ばれる。
func (u *CampaignUsecase) RefreshCampaigns(ctx context.Context) error {
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return refreshCampaignsTx(ctx, r, time.Now())
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.invalidateClosing(ctx)
	return nil
}

func (u *CampaignUsecase) invalidateClosing(ctx context.Context) {
	if u.cache != nil {
		u.cache.InvalidateClosing(ctx)
	}
}

func (u *CampaignUsecase) buildView(ctx context.Context, campaign model.Campaign) (CampaignResponse, error) {
	sku, err := u.skuRepo.FindByID(ctx, campaign.SkuID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	prize, err := u.prizeRepo.FindByID(ctx, campaign.PrizeID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	draw, err := u.drawRepo.FindByCampaignID(ctx, campaign.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CampaignResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return newCampaignView(campaign, sku, prize, draw), nil
}

func (u *CampaignUsecase) buildViews(ctx context.Context, campaigns []model.Campaign) []CampaignResponse {
	views := make([]CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		view, err := u.buildView(ctx, c)
		if err != nil {
			continue
		}
		views = append(views, view)
	}
	return views
}
