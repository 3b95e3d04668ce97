package usecase

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

type DrawUsecase struct {
	tx           repo.TransactionManager
	drawRepo     repo.DrawRepository
	campaignRepo repo.CampaignRepository
	couponRepo   repo.CouponRepository
	prizeRepo    repo.PrizeRepository
	userRepo     repo.UserRepository
	logger       *zap.Logger
}

func NewDrawUsecase(
	tx repo.TransactionManager,
	drawRepo repo.DrawRepository,
	campaignRepo repo.CampaignRepository,
	couponRepo repo.CouponRepository,
	prizeRepo repo.PrizeRepository,
	userRepo repo.UserRepository,
	logger *zap.Logger,
) *DrawUsecase {
	return &DrawUsecase{
		tx:           tx,
		drawRepo:     drawRepo,
		campaignRepo: campaignRepo,
		couponRepo:   couponRepo,
		prizeRepo:    prizeRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

type DrawResponse struct {
	ID         int64       `json:"id"`
	CampaignID int64       `json:"campaign_id"`
	VideoURL   string      `json:"video_url"`
	StartDate  *time.Time  `json:"start_date"`
	EndDate    *time.Time  `json:"end_date"`
	WinnerID   *int64      `json:"winner_id"`
	Prize      model.Prize `json:"prize"`
}

type WinnerResponse struct {
	DrawID     int64       `json:"draw_id"`
	CampaignID int64       `json:"campaign_id"`
	WinnerID   int64       `json:"winner_id"`
	WinnerName string      `json:"winner_name"`
	Prize      model.Prize `json:"prize"`
}

// ResolveDraws は受付期間内（end_date >= now）の抽選すべてに当選者を確定する。
// 当選者セットは winner_id IS NULL の条件付きUPDATEなので、
// 複数プロセスが同時に走っても二重確定しない。
func (u *DrawUsecase) ResolveDraws(ctx context.Context) error {
	draws, err := u.drawRepo.ListEligible(ctx)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	for _, d := range draws {
		if d.EndDate == nil || d.EndDate.Before(now) {
			continue
		}
		u.resolveOne(ctx, d)
	}
	return nil
}

func (u *DrawUsecase) resolveOne(ctx context.Context, d model.Draw) {
	holders, err := u.couponRepo.ListHolderIDsByCampaign(ctx, d.CampaignID)
	if err != nil {
		u.logger.Error("failed to load coupon holders",
			zap.Int64("draw_id", d.ID), zap.Error(err))
		return
	}
	if len(holders) == 0 {
		// 参加者ゼロ。次回の再計算に持ち越す。
		u.logger.Warn("draw has no coupon holders", zap.Int64("draw_id", d.ID))
		return
	}

	winnerID := holders[rand.Intn(len(holders))]

	won, err := u.drawRepo.SetWinnerIfUnset(ctx, d.ID, winnerID)
	if err != nil {
		u.logger.Error("failed to set winner",
			zap.Int64("draw_id", d.ID), zap.Error(err))
		return
	}
	if !won {
		// 他プロセスが先に確定させた
		return
	}

	u.logger.Info("draw resolved",
		zap.Int64("draw_id", d.ID),
		zap.Int64("campaign_id", d.CampaignID),
		zap.Int64("winner_id", winnerID),
		zap.Int("entrants", len(holders)))
}

// UpcomingDraws は受付中でまだ当選者が出ていない抽選。
func (u *DrawUsecase) UpcomingDraws(ctx context.Context) ([]DrawResponse, error) {
	draws, err := u.drawRepo.ListEligible(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	upcoming := make([]DrawResponse, 0, len(draws))
	for _, d := range draws {
		if d.EndDate == nil || d.EndDate.Before(now) {
			continue
		}
		upcoming = append(upcoming, u.buildView(ctx, d))
	}
	return upcoming, nil
}

// PastDraws は当選者確定済みの抽選。
func (u *DrawUsecase) PastDraws(ctx context.Context) ([]DrawResponse, error) {
	draws, err := u.drawRepo.ListResolved(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	past := make([]DrawResponse, 0, len(draws))
	for _, d := range draws {
		past = append(past, u.buildView(ctx, d))
	}
	return past, nil
}

func (u *DrawUsecase) Winners(ctx context.Context) ([]WinnerResponse, error) {
	draws, err := u.drawRepo.ListResolved(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	winners := make([]WinnerResponse, 0, len(draws))
	for _, d := range draws {
		if d.WinnerID == nil {
			continue
		}

		w := WinnerResponse{
			DrawID:     d.ID,
			CampaignID: d.CampaignID,
			WinnerID:   *d.WinnerID,
		}
		if user, err := u.userRepo.FindByID(ctx, *d.WinnerID); err == nil {
			w.WinnerName = user.Firstname + " " + user.Lastname
		}
		if campaign, err := u.campaignRepo.FindByID(ctx, d.CampaignID); err == nil {
			if prize, err := u.prizeRepo.FindByID(ctx, campaign.PrizeID); err == nil {
				w.Prize = prize
			}
		}
		winners = append(winners, w)
	}
	return winners, nil
}

// RedeemCoupon は当選者が賞品と引き換える。未当選・引換済みは拒否。
func (u *DrawUsecase) RedeemCoupon(ctx context.Context, userID int64, code string) (model.Coupon, error) {
	if userID <= 0 {
		return model.Coupon{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if code == "" {
		return model.Coupon{}, NewHTTPError(http.StatusBadRequest, "code required")
	}

	coupon, err := u.couponRepo.FindByCode(ctx, userID, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusNotFound, "coupon not found")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if coupon.IsRedeemed {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "coupon already redeemed")
	}

	draw, err := u.drawRepo.FindByCampaignID(ctx, coupon.CampaignID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "draw is not resolved yet")
	}
	if err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if draw.WinnerID == nil {
		return model.Coupon{}, NewHTTPError(http.StatusConflict, "draw is not resolved yet")
	}
	if *draw.WinnerID != userID {
		return model.Coupon{}, NewHTTPError(http.StatusForbidden, "coupon did not win")
	}

	if err := u.couponRepo.MarkRedeemed(ctx, coupon.ID); err != nil {
		return model.Coupon{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	coupon.IsRedeemed = true
	return coupon, nil
}

func (u *DrawUsecase) buildView(ctx context.Context, d model.Draw) DrawResponse {
	view := DrawResponse{
		ID:         d.ID,
		CampaignID: d.CampaignID,
		VideoURL:   d.VideoURL,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		WinnerID:   d.WinnerID,
	}
	if campaign, err := u.campaignRepo.FindByID(ctx, d.CampaignID); err == nil {
		if prize, err := u.prizeRepo.FindByID(ctx, campaign.PrizeID); err == nil {
			view.Prize = prize
		}
	}
	return view
}
