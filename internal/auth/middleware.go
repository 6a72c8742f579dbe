package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/domain"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const principalKey = "auth_principal"

// bearerPrefix is matched case-sensitively, one trailing space.
const bearerPrefix = "Bearer "

// Middleware validates bearer tokens and decodes principals.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate enforces authentication for protected routes. The principal
// is trusted purely on the strength of the token signature; no store lookup
// happens here. Every verification failure collapses to the same
// unauthorized error so callers learn nothing about why it failed.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.ParseToken(authHeader[len(bearerPrefix):])
	if err != nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	c.Locals(principalKey, &domain.Principal{
		SubjectID: claims.Subject,
		Email:     claims.Email,
		Role:      claims.Role,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Principal)
	return principal, ok
}
