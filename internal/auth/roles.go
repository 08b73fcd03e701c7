package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-status-service/internal/domain"
	apperrors "github.com/spec-kit/event-status-service/pkg/util/errorutil"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireGroupAccess ensures the principal may read the group named by the
// route parameter param.
func RequireGroupAccess(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.CanAccessGroup(c.Params(param)) {
			return apperrors.NewForbidden("group access denied")
		}
		return c.Next()
	}
}
