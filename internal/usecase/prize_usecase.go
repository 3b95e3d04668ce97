package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

type PrizeUsecase struct {
	prizeRepo repo.PrizeRepository
}

func NewPrizeUsecase(prizeRepo repo.PrizeRepository) *PrizeUsecase {
	return &PrizeUsecase{prizeRepo: prizeRepo}
}

type RegisterPrizeInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type UpdatePrizeInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

func (u *PrizeUsecase) Register(ctx context.Context, userID int64, in RegisterPrizeInput) (model.Prize, error) {
	if userID <= 0 {
		return model.Prize{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Name == "" {
		return model.Prize{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}

	prize, err := u.prizeRepo.Create(ctx, model.Prize{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
	})
	if err != nil {
		return model.Prize{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return prize, nil
}

func (u *PrizeUsecase) Get(ctx context.Context, prizeID int64) (model.Prize, error) {
	if prizeID <= 0 {
		return model.Prize{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	prize, err := u.prizeRepo.FindByID(ctx, prizeID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Prize{}, NewHTTPError(http.StatusNotFound, "prize not found")
	}
	if err != nil {
		return model.Prize{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return prize, nil
}

func (u *PrizeUsecase) List(ctx context.Context) ([]model.Prize, error) {
	prizes, err := u.prizeRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return prizes, nil
}

func (u *PrizeUsecase) Update(ctx context.Context, userID int64, prizeID int64, in UpdatePrizeInput) (model.Prize, error) {
	prize, err := u.findOwned(ctx, userID, prizeID)
	if err != nil {
		return model.Prize{}, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return model.Prize{}, NewHTTPError(http.StatusBadRequest, "name cannot be empty")
		}
		prize.Name = *in.Name
	}
	if in.Description != nil {
		prize.Description = *in.Description
	}
	if in.Image != nil {
		prize.Image = *in.Image
	}

	if err := u.prizeRepo.Update(ctx, prize); err != nil {
		return model.Prize{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return prize, nil
}

func (u *PrizeUsecase) Delete(ctx context.Context, userID int64, isAdmin bool, prizeID int64) error {
	prize, err := u.prizeRepo.FindByID(ctx, prizeID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "prize not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if prize.UserID != userID && !isAdmin {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}

	if err := u.prizeRepo.Delete(ctx, prizeID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *PrizeUsecase) findOwned(ctx context.Context, userID int64, prizeID int64) (model.Prize, error) {
	if userID <= 0 {
		return model.Prize{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	prize, err := u.prizeRepo.FindByID(ctx, prizeID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Prize{}, NewHTTPError(http.StatusNotFound, "prize not found")
	}
	if err != nil {
		return model.Prize{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if prize.UserID != userID {
		return model.Prize{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return prize, nil
}
