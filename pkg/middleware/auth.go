// Package middleware implements the per-request auth gate as two stages:
// a resolve stage that always runs and never rejects, and a require stage
// mounted only on protected routes. The split lets endpoints like session
// validation distinguish "no credential" from "invalid credential" while
// everything else gets an all-or-nothing gate.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/walletmaster/backend/pkg/service/auth"
)

const principalKey = "principal"

// ResolveAuth extracts and verifies the session cookie and, on success,
// attaches the principal to the request context. It is unconditionally
// non-blocking so public endpoints stay reachable: a missing or invalid
// token simply leaves no principal behind.
func ResolveAuth(sessions *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := TokenFromRequest(c); token != "" {
			if claims := sessions.VerifyToken(token); claims != nil {
				c.Locals(principalKey, claims)
			}
		}
		return c.Next()
	}
}

// RequireAuth rejects requests that carry no resolved principal before the
// handler runs. Mount after ResolveAuth on protected routes.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFromCtx(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required. Please log in.",
				"error":   "AUTHENTICATION_REQUIRED",
			})
		}
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal resolved for this request, or nil.
func PrincipalFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(principalKey).(*auth.Claims)
	return claims
}
