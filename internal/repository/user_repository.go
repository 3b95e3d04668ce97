package repository

import (
	"context"
	"errors"

	"github.com/zolovio/Classy-backend/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// 配送先。ユーザーごとに1件を上書き運用。
type LocationRepository interface {
	FindByID(ctx context.Context, locationID int64) (model.Location, error)
	FindByUserID(ctx context.Context, userID int64) (model.Location, error)
	Upsert(ctx context.Context, location model.Location) (model.Location, error)
}
