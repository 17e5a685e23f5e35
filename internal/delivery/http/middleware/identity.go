package middleware

import (
	"strings"

	"launchboard/internal/pkg/token"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxIdentityKey = "identity"

	sessionCookieName = "__session"
)

// IdentityMiddleware resolves the caller's credential to a verified
// identity. Resolution never fails the request: a missing, malformed, or
// expired credential resolves to the anonymous identity, and the
// downstream authorization decides whether anonymous is acceptable.
type IdentityMiddleware struct {
	tokens token.Service
}

func NewIdentityMiddleware(tokens token.Service) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

func (m *IdentityMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals(CtxIdentityKey, m.resolve(c))
		return c.Next()
	}
}

func (m *IdentityMiddleware) resolve(c fiber.Ctx) token.Identity {
	raw, ok := bearerTokenFromHeader(c.Get("Authorization"))
	if !ok {
		raw = strings.TrimSpace(c.Cookies(sessionCookieName))
	}
	if raw == "" {
		return token.Anonymous
	}

	ident, err := m.tokens.Verify(raw)
	if err != nil {
		return token.Anonymous
	}
	return ident
}

// RequireIdentity gates a route on a resolved identity. Must run after
// IdentityMiddleware.
func RequireIdentity() fiber.Handler {
	return func(c fiber.Ctx) error {
		if IdentityFromCtx(c).IsAnonymous() {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil)
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the resolved identity, anonymous when the
// resolver did not run.
func IdentityFromCtx(c fiber.Ctx) token.Identity {
	ident, ok := c.Locals(CtxIdentityKey).(token.Identity)
	if !ok {
		return token.Anonymous
	}
	return ident
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}

	return tok, true
}
