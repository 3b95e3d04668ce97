package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserGormRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"firstname":       user.Firstname,
			"lastname":        user.Lastname,
			"mobile_no":       user.MobileNo,
			"profile_picture": user.ProfilePicture,
			"active":          user.Active,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrUserNotFound
	}
	return nil
}

type LocationGormRepository struct {
	db *gorm.DB
}

func NewLocationGormRepository(db *gorm.DB) *LocationGormRepository {
	return &LocationGormRepository{db: db}
}

func (r *LocationGormRepository) FindByID(ctx context.Context, locationID int64) (model.Location, error) {
	var loc model.Location

	err := r.db.WithContext(ctx).
		Where("id = ?", locationID).
		First(&loc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Location{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

func (r *LocationGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Location, error) {
	var loc model.Location

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		First(&loc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Location{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

// ユーザーごとに1件運用。あれば上書き、無ければ作成。
func (r *LocationGormRepository) Upsert(ctx context.Context, location model.Location) (model.Location, error) {
	var out model.Location

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Location

		findErr := tx.
			Where("user_id = ?", location.UserID).
			Order("id asc").
			First(&existing).Error

		if findErr == nil {
			location.ID = existing.ID
			if err := tx.Model(&model.Location{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"address":     location.Address,
					"city":        location.City,
					"province":    location.Province,
					"country":     location.Country,
					"postal_code": location.PostalCode,
				}).Error; err != nil {
				return err
			}
			out = location
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		out = location
		return nil
	})

	if err != nil {
		return model.Location{}, err
	}
	return out, nil
}
