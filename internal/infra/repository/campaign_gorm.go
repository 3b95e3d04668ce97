package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type CampaignGormRepository struct {
	db *gorm.DB
}

func NewCampaignGormRepository(db *gorm.DB) *CampaignGormRepository {
	return &CampaignGormRepository{db: db}
}

func (r *CampaignGormRepository) Create(ctx context.Context, campaign model.Campaign) (model.Campaign, error) {
	if err := r.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return model.Campaign{}, err
	}
	return campaign, nil
}

func (r *CampaignGormRepository) FindByID(ctx context.Context, campaignID int64) (model.Campaign, error) {
	var campaign model.Campaign

	err := r.db.WithContext(ctx).
		Where("id = ?", campaignID).
		First(&campaign).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Campaign{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Campaign{}, err
	}
	return campaign, nil
}

func (r *CampaignGormRepository) List(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign

	if err := r.db.WithContext(ctx).
		Order("id desc").
		Find(&campaigns).Error; err != nil {
		return []model.Campaign{}, err
	}
	return campaigns, nil
}

func (r *CampaignGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Campaign, error) {
	var campaigns []model.Campaign

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&campaigns).Error; err != nil {
		return []model.Campaign{}, err
	}
	return campaigns, nil
}

// ライフサイクル再計算の対象（start_dateが入っているもの）
func (r *CampaignGormRepository) ListScheduled(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign

	if err := r.db.WithContext(ctx).
		Where("start_date IS NOT NULL").
		Order("id asc").
		Find(&campaigns).Error; err != nil {
		return []model.Campaign{}, err
	}
	return campaigns, nil
}

func (r *CampaignGormRepository) Update(ctx context.Context, campaign model.Campaign) error {
	res := r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"name":        campaign.Name,
			"description": campaign.Description,
			"image":       campaign.Image,
			"threshold":   campaign.Threshold,
			"is_active":   campaign.IsActive,
			"start_date":  campaign.StartDate,
			"end_date":    campaign.EndDate,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CampaignGormRepository) Delete(ctx context.Context, campaignID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Campaign{}, campaignID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type DrawGormRepository struct {
	db *gorm.DB
}

func NewDrawGormRepository(db *gorm.DB) *DrawGormRepository {
	return &DrawGormRepository{db: db}
}

func (r *DrawGormRepository) Create(ctx context.Context, draw model.Draw) (model.Draw, error) {
	if err := r.db.WithContext(ctx).Create(&draw).Error; err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}

func (r *DrawGormRepository) FindByID(ctx context.Context, drawID int64) (model.Draw, error) {
	var draw model.Draw

	err := r.db.WithContext(ctx).
		Where("id = ?", drawID).
		First(&draw).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Draw{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}

func (r *DrawGormRepository) FindByCampaignID(ctx context.Context, campaignID int64) (model.Draw, error) {
	var draw model.Draw

	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		First(&draw).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Draw{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Draw{}, err
	}
	return draw, nil
}

func (r *DrawGormRepository) Update(ctx context.Context, draw model.Draw) error {
	res := r.db.WithContext(ctx).
		Model(&model.Draw{}).
		Where("id = ?", draw.ID).
		Updates(map[string]interface{}{
			"video_url":  draw.VideoURL,
			"start_date": draw.StartDate,
			"end_date":   draw.EndDate,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DrawGormRepository) Delete(ctx context.Context, drawID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Draw{}, drawID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DrawGormRepository) ListEligible(ctx context.Context) ([]model.Draw, error) {
	var draws []model.Draw

	if err := r.db.WithContext(ctx).
		Where("end_date IS NOT NULL AND winner_id IS NULL").
		Order("id asc").
		Find(&draws).Error; err != nil {
		return []model.Draw{}, err
	}
	return draws, nil
}

func (r *DrawGormRepository) ListResolved(ctx context.Context) ([]model.Draw, error) {
	var draws []model.Draw

	if err := r.db.WithContext(ctx).
		Where("winner_id IS NOT NULL").
		Order("id desc").
		Find(&draws).Error; err != nil {
		return []model.Draw{}, err
	}
	return draws, nil
}

// 当選者のセットは winner_id IS NULL のときだけ通す。
// 同時実行で負けた側は false を受け取る。
func (r *DrawGormRepository) SetWinnerIfUnset(ctx context.Context, drawID int64, winnerID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Draw{}).
		Where("id = ? AND winner_id IS NULL", drawID).
		Update("winner_id", winnerID)

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
