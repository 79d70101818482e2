package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"restaurant_pos/internal/apperrors"
	"restaurant_pos/internal/models"
	"restaurant_pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Claims is the payload of a session token.
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	// Login checks credentials and returns a signed session token.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ParseToken(token string) (*Claims, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	ChangePassword(ctx context.Context, id uint, current, next string) error
}

type authService struct {
	users   repository.UserRepository
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

func NewAuthService(users repository.UserRepository, secret string, timeout time.Duration) AuthService {
	return &authService{users: users, secret: []byte(secret), timeout: timeout, now: time.Now}
}

func (s *authService) CreateUser(ctx context.Context, user *models.User, password string) error {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return apperrors.Validation("username is required")
	}
	if len(password) < minPasswordLength {
		return apperrors.Validationf("password must be at least %d characters", minPasswordLength)
	}
	if user.Role == "" {
		user.Role = string(models.Staff)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.IsActive = true

	return s.users.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if apperrors.Is(err, apperrors.KindNotFound) {
		return "", nil, apperrors.Auth("invalid username or password")
	}
	if err != nil {
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.Auth("invalid username or password")
	}
	if !user.IsActive {
		return "", nil, apperrors.Auth("account is disabled")
	}

	token, err := s.issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.timeout)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperrors.Auth("session expired")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindAuth, "invalid session", err)
	}
	return claims, nil
}

func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *authService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.Auth("current password is incorrect")
	}
	if len(next) < minPasswordLength {
		return apperrors.Validationf("password must be at least %d characters", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashed)
	return s.users.Update(ctx, user)
}
