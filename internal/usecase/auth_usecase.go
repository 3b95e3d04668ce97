package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/zolovio/Classy-backend/internal/config"
	"github.com/zolovio/Classy-backend/internal/domain/model"
	repo "github.com/zolovio/Classy-backend/internal/repository"
)

// accesstokenの有効期限
const accessTokenTTL = 24 * time.Hour

const minPasswordLength = 8

type AuthUsecase struct {
	cfg      config.Config
	userRepo repo.UserRepository
}

func NewAuthUsecase(cfg config.Config, userRepo repo.UserRepository) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, userRepo: userRepo}
}

type UserDTO struct {
	ID             int64  `json:"id"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	MobileNo       string `json:"mobile_no"`
	ProfilePicture string `json:"profile_picture"`
	Active         bool   `json:"active"`
	IsAdmin        bool   `json:"is_admin"`
}

type RegisterInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	MobileNo  string `json:"mobile_no"`
	Password  string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Firstname:      u.Firstname,
		Lastname:       u.Lastname,
		Email:          u.Email,
		MobileNo:       u.MobileNo,
		ProfilePicture: u.ProfilePicture,
		Active:         u.Active,
		IsAdmin:        u.IsAdmin,
	}
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if in.Firstname == "" || in.Lastname == "" {
		return AuthResponse{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < minPasswordLength {
		return AuthResponse{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	if _, err := u.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return AuthResponse{}, NewHTTPError(http.StatusConflict, "email already registered")
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		MobileNo:     in.MobileNo,
		PasswordHash: string(pwHash),
		Active:       true,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusConflict, "email already registered")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResponse{User: toUserDTO(user), Token: token}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResponse{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := u.userRepo.FindByEmail(ctx, in.Email)
	if err != nil || user == nil {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.Active {
		return AuthResponse{}, NewHTTPError(http.StatusForbidden, "account is deactivated")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := u.issueAccessToken(user)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResponse{User: toUserDTO(user), Token: token}, nil
}

func (u *AuthUsecase) issueAccessToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"is_admin": user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}
