package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

type UserUsecase struct {
	userRepo     repo.UserRepository
	locationRepo repo.LocationRepository
}

func NewUserUsecase(userRepo repo.UserRepository, locationRepo repo.LocationRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, locationRepo: locationRepo}
}

type UpdateProfileInput struct {
	Firstname      *string `json:"firstname"`
	Lastname       *string `json:"lastname"`
	MobileNo       *string `json:"mobile_no"`
	ProfilePicture *string `json:"profile_picture"`
}

type UpsertLocationInput struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func (u *UserUsecase) Profile(ctx context.Context, userID int64) (UserDTO, error) {
	user, err := u.findActive(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserDTO, error) {
	user, err := u.findActive(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}

	if in.Firstname != nil {
		if *in.Firstname == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "firstname cannot be empty")
		}
		user.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		if *in.Lastname == "" {
			return UserDTO{}, NewHTTPError(http.StatusBadRequest, "lastname cannot be empty")
		}
		user.Lastname = *in.Lastname
	}
	if in.MobileNo != nil {
		user.MobileNo = *in.MobileNo
	}
	if in.ProfilePicture != nil {
		user.ProfilePicture = *in.ProfilePicture
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toUserDTO(user), nil
}

// Deactivate は退会。データは残してログイン不可にするだけ。
func (u *UserUsecase) Deactivate(ctx context.Context, userID int64) error {
	user, err := u.findActive(ctx, userID)
	if err != nil {
		return err
	}

	user.Active = false
	if err := u.userRepo.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *UserUsecase) Location(ctx context.Context, userID int64) (model.Location, error) {
	if userID <= 0 {
		return model.Location{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	location, err := u.locationRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Location{}, NewHTTPError(http.StatusNotFound, "location not found")
	}
	if err != nil {
		return model.Location{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return location, nil
}

// UpsertLocation は配送先の登録・上書き。1ユーザー1件。
func (u *UserUsecase) UpsertLocation(ctx context.Context, userID int64, in UpsertLocationInput) (model.Location, error) {
	if userID <= 0 {
		return model.Location{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Address == "" || in.City == "" || in.Country == "" {
		return model.Location{}, NewHTTPError(http.StatusBadRequest, "address, city and country are required")
	}

	location, err := u.locationRepo.Upsert(ctx, model.Location{
		UserID:     userID,
		Address:    in.Address,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	})
	if err != nil {
		return model.Location{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return location, nil
}

func (u *UserUsecase) findActive(ctx context.Context, userID int64) (*model.User, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.Active {
		return nil, NewHTTPError(http.StatusForbidden, "account is deactivated")
	}
	return user, nil
}
