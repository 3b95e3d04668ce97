package repository

import (
	"context"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error)
	FindByID(ctx context.Context, couponID int64) (model.Coupon, error)
	FindByCode(ctx context.Context, userID int64, code string) (model.Coupon, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Coupon, error)

	// 抽選の母集団：そのキャンペーンのクーポン保有ユーザー（重複なし）
	ListHolderIDsByCampaign(ctx context.Context, campaignID int64) ([]int64, error)

	MarkRedeemed(ctx context.Context, couponID int64) error
	DeleteByID(ctx context.Context, couponID int64) error
}

type PrizeRepository interface {
	Create(ctx context.Context, prize model.Prize) (model.Prize, error)
	FindByID(ctx context.Context, prizeID int64) (model.Prize, error)
	List(ctx context.Context) ([]model.Prize, error)
	Update(ctx context.Context, prize model.Prize) error
	Delete(ctx context.Context, prizeID int64) error
}
