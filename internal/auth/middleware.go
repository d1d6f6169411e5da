package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/domain"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

const identityKey = "auth_identity"

// Middleware validates bearer tokens on protected routes. A missing or
// garbled Authorization header is rejected with 401; a token that fails
// verification (bad signature, expired, unparseable) with 403. Verification
// is pure signature and expiry checking, no store lookup.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the middleware around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication and attaches the caller identity to the
// request locals for downstream handlers.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewForbidden("invalid token")
	}

	identity := claims.Identity()
	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated identity.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return domain.Identity{}, false
	}
	identity, ok := val.(domain.Identity)
	return identity, ok
}
