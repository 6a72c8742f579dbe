package service

import (
	"context"
	"time"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// dummyHash keeps the failure path doing bcrypt work when the email is
// unknown, so the two rejection cases take similar time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// LoginResult carries the minted credentials and the sanitized profile.
type LoginResult struct {
	User             domain.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService coordinates login and token renewal.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours, cfg.Auth.RefreshTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login verifies the email/password pair and mints access and refresh tokens.
// Unknown email and wrong password return the identical error so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		_ = auth.ComparePassword(dummyHash, password)
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	access, accessExp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	refresh, refreshExp, err := s.tokenMgr.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &LoginResult{
		User:             user.Profile(),
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := s.tokenMgr.ParseToken(refreshToken)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	access, exp, err := s.tokenMgr.GenerateAccessToken(user)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return access, exp, nil
}

// Verify loads the profile for an already authenticated principal.
func (s *AuthService) Verify(ctx context.Context, principal *domain.Principal) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, principal.SubjectID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	profile := user.Profile()
	return &profile, nil
}

// Register creates an account. Intended for bootstrap/seed use; public
// registration is not exposed on the router.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	profile := user.Profile()
	return &profile, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
