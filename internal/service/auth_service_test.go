package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/domain"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
	for _, u := range users {
		repo.byEmail[u.Email] = u
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = "generated-id"
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func testAuthConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenTTLHours:  168,
		RefreshTokenTTLHours: 720,
		BcryptCost:           bcrypt.MinCost,
	}}
}

func storedAdmin(t *testing.T) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           "admin-1",
		Name:         "Site Owner",
		Email:        "a@b.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(storedAdmin(t)))

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Empty(t, result.User.PasswordHash, "profile must not leak the hash")
	require.Equal(t, "a@b.com", result.User.Email)
}

func TestLoginTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(storedAdmin(t)))

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.Subject)
	require.Equal(t, domain.RoleAdmin, claims.Role)

	refreshClaims, err := svc.TokenManager().ParseToken(result.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "admin-1", refreshClaims.Subject)
	require.Empty(t, refreshClaims.Role)
}

func TestLoginFailureDoesNotLeakUserExistence(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(storedAdmin(t)))

	_, wrongPassErr := svc.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, wrongPassErr)

	_, noUserErr := svc.Login(context.Background(), "nouser@x.com", "x")
	require.Error(t, noUserErr)

	wrongPass := apperrors.ToDomainError(wrongPassErr)
	noUser := apperrors.ToDomainError(noUserErr)
	require.Equal(t, wrongPass.Code, noUser.Code)
	require.Equal(t, wrongPass.Message, noUser.Message)
	require.Equal(t, wrongPass.HTTPStatus, noUser.HTTPStatus)
}

func TestRefreshMintsAccessToken(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(storedAdmin(t)))

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	access, exp, err := svc.Refresh(context.Background(), result.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(access)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRefreshRejectsAccessTokenForDeletedUser(t *testing.T) {
	repo := newFakeUserRepo(storedAdmin(t))
	svc := NewAuthService(testAuthConfig(), repo)

	result, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	delete(repo.byID, "admin-1")

	_, _, err = svc.Refresh(context.Background(), result.RefreshToken)
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	user, err := svc.Register(context.Background(), "Owner", "new@b.com", "pw", domain.RoleAdmin)
	require.NoError(t, err)
	require.Empty(t, user.PasswordHash)

	stored := repo.byEmail["new@b.com"]
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "pw", stored.PasswordHash)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "pw"))
}

func TestVerifyStripsHash(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(storedAdmin(t)))

	user, err := svc.Verify(context.Background(), &domain.Principal{SubjectID: "admin-1"})
	require.NoError(t, err)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, "a@b.com", user.Email)
}
