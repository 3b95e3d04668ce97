package repository

import (
	"context"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign model.Campaign) (model.Campaign, error)
	FindByID(ctx context.Context, campaignID int64) (model.Campaign, error)
	List(ctx context.Context) ([]model.Campaign, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Campaign, error)

	// start_date が入っているものだけ（ライフサイクル再計算の対象）
	ListScheduled(ctx context.Context) ([]model.Campaign, error)

	Update(ctx context.Context, campaign model.Campaign) error
	Delete(ctx context.Context, campaignID int64) error
}

type DrawRepository interface {
	Create(ctx context.Context, draw model.Draw) (model.Draw, error)
	FindByID(ctx context.Context, drawID int64) (model.Draw, error)
	FindByCampaignID(ctx context.Context, campaignID int64) (model.Draw, error)
	Update(ctx context.Context, draw model.Draw) error
	Delete(ctx context.Context, drawID int64) error

	// 受付開始済み（end_date入り）かつ winner 未確定
	ListEligible(ctx context.Context) ([]model.Draw, error)
	// winner 確定済み
	ListResolved(ctx context.Context) ([]model.Draw, error)

	// winner_id IS NULL のときだけセットする（負けたら false）
	SetWinnerIfUnset(ctx context.Context, drawID int64, winnerID int64) (bool, error)
}
