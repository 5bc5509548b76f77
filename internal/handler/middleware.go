package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"absence-tracker/internal/policy"
	"absence-tracker/internal/service"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a principal and stores it in
// the request locals. Everything downstream trusts that principal; missing or
// invalid credentials fail closed with 401.
func AuthMiddleware(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := extractBearerToken(c)
		if !ok {
			return JsonError(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		principal, err := auth.ParseToken(raw)
		if err != nil {
			return JsonError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom pulls the authenticated principal set by AuthMiddleware.
func PrincipalFrom(c *fiber.Ctx) (policy.Principal, bool) {
	p, ok := c.Locals(principalKey).(policy.Principal)
	return p, ok
}

func extractBearerToken(c *fiber.Ctx) (string, bool) {
	const prefix = "Bearer "
	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}
	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}
