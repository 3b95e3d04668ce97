package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type CouponGormRepository struct {
	db *gorm.DB
}

func NewCouponGormRepository(db *gorm.DB) *CouponGormRepository {
	return &CouponGormRepository{db: db}
}

func (r *CouponGormRepository) Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	if err := r.db.WithContext(ctx).Create(&coupon).Error; err != nil {
		return model.Coupon{}, err
	}
	return coupon, nil
}

func (r *CouponGormRepository) FindByID(ctx context.Context, couponID int64) (model.Coupon, error) {
	var coupon model.Coupon

	err := r.db.WithContext(ctx).
		Where("id = ?", couponID).
		First(&coupon).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return coupon, nil
}

func (r *CouponGormRepository) FindByCode(ctx context.Context, userID int64, code string) (model.Coupon, error) {
	var coupon model.Coupon

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		First(&coupon).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Coupon{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Coupon{}, err
	}
	return coupon, nil
}

func (r *CouponGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Coupon, error) {
	var coupons []model.Coupon

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&coupons).Error; err != nil {
		return []model.Coupon{}, err
	}
	return coupons, nil
}

// 抽選母集団。同一ユーザーが複数枚持っていても1回だけ数える。
func (r *CouponGormRepository) ListHolderIDsByCampaign(ctx context.Context, campaignID int64) ([]int64, error) {
	var ids []int64

	if err := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Distinct("user_id").
		Where("campaign_id = ?", campaignID).
		Order("user_id asc").
		Pluck("user_id", &ids).Error; err != nil {
		return []int64{}, err
	}
	return ids, nil
}

func (r *CouponGormRepository) MarkRedeemed(ctx context.Context, couponID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Coupon{}).
		Where("id = ?", couponID).
		Update("is_redeemed", true)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CouponGormRepository) DeleteByID(ctx context.Context, couponID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Coupon{}, couponID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type PrizeGormRepository struct {
	db *gorm.DB
}

func NewPrizeGormRepository(db *gorm.DB) *PrizeGormRepository {
	return &PrizeGormRepository{db: db}
}

func (r *PrizeGormRepository) Create(ctx context.Context, prize model.Prize) (model.Prize, error) {
	if err := r.db.WithContext(ctx).Create(&prize).Error; err != nil {
		return model.Prize{}, err
	}
	return prize, nil
}

func (r *PrizeGormRepository) FindByID(ctx context.Context, prizeID int64) (model.Prize, error) {
	var prize model.Prize

	err := r.db.WithContext(ctx).
		Where("id = ?", prizeID).
		First(&prize).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Prize{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Prize{}, err
	}
	return prize, nil
}

func (r *PrizeGormRepository) List(ctx context.Context) ([]model.Prize, error) {
	var prizes []model.Prize

	if err := r.db.WithContext(ctx).
		Order("id desc").
		Find(&prizes).Error; err != nil {
		return []model.Prize{}, err
	}
	return prizes, nil
}

func (r *PrizeGormRepository) Update(ctx context.Context, prize model.Prize) error {
	res := r.db.WithContext(ctx).
		Model(&model.Prize{}).
		Where("id = ?", prize.ID).
		Updates(map[string]interface{}{
			"name":        prize.Name,
			"description": prize.Description,
			"image":       prize.Image,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PrizeGormRepository) Delete(ctx context.Context, prizeID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Prize{}, prizeID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
