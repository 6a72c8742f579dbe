package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/portfolio-service/internal/domain"
)

const testSecret = "test-secret"

func testUser() *domain.User {
	return &domain.User{
		ID:    "7c9a4c2e-1a71-4a7e-90cd-6a4f2a90ab11",
		Name:  "Site Owner",
		Email: "owner@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)
	user := testUser()

	token, exp, err := tm.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, exp.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestRefreshTokenCarriesSubjectOnly(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)

	token, _, err := tm.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Empty(t, claims.Email)
	require.Empty(t, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)
	other := NewTokenManager("another-secret", 168, 720)

	token, _, err := other.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)

	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsUnexpectedMethod(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	// alg=none tokens must never verify, whatever the payload says.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, 168, 720)
	_, err := tm.ParseToken("not-a-token")
	require.Error(t, err)
}
