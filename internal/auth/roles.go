package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/contact-bridge/pkg/util"
)

// Scope names what a token may do.
type Scope string

// ScopeAdmin allows the manual processing and macro inspection endpoints.
const ScopeAdmin Scope = "admin"

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	Subject string
	Scope   Scope
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireScope ensures the principal holds scope.
func RequireScope(scope Scope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.Scope != scope {
			return apperrors.NewForbidden("insufficient scope")
		}
		return c.Next()
	}
}
