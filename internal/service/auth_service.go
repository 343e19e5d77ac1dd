package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"finledger/internal/currency"
	"finledger/internal/dto"
	"finledger/internal/models"
	"finledger/internal/repository"
	"finledger/pkg/auth"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users           *repository.UserRepository
	jwtManager      *auth.JWTManager
	converter       CurrencyConverter
	defaultCurrency string
	logger          *zap.Logger
}

func NewAuthService(
	users *repository.UserRepository,
	jwtManager *auth.JWTManager,
	converter CurrencyConverter,
	defaultCurrency string,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:           users,
		jwtManager:      jwtManager,
		converter:       converter,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	cur := strings.ToUpper(req.Currency)
	if cur == "" {
		cur = s.defaultCurrency
	}
	if !s.converter.Supported(cur) {
		return nil, currency.ErrUnsupportedCurrency
	}

	exists, err := s.users.Exists(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
		Currency:     cur,
		SavingsVault: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("username", user.Username),
		zap.String("currency", user.Currency),
	)

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *AuthService) GetProfile(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateFullName(ctx context.Context, req *dto.UpdateNameRequest) (*dto.UserResponse, error) {
	if err := s.users.UpdateFullName(ctx, req.Username, req.FullName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, req.Username)
}

func (s *AuthService) UpdatePassword(ctx context.Context, req *dto.UpdatePasswordRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdatePasswordHash(ctx, req.Username, hashedPassword); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, req.Username)
}

// UpdateCurrency changes the user's base currency. Previously stored
// transaction amounts are not rebased.
func (s *AuthService) UpdateCurrency(ctx context.Context, req *dto.UpdateCurrencyRequest) (*dto.UserResponse, error) {
	cur := strings.ToUpper(req.Currency)
	if !s.converter.Supported(cur) {
		return nil, currency.ErrUnsupportedCurrency
	}

	if err := s.users.UpdateCurrency(ctx, req.Username, cur); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, req.Username)
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         toUserResponse(user),
	}, nil
}
