package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "auth"

const authCookieMaxAge = 7 * 24 * time.Hour

// SetAuthCookie attaches the session token as an HTTP-only, path-scoped
// cookie. Production gets Secure + SameSite=None for cross-site use behind
// TLS; everything else gets SameSite=Lax so local dev works without TLS.
func SetAuthCookie(c *fiber.Ctx, token string, production bool) {
	sameSite := fiber.CookieSameSiteLaxMode
	if production {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(authCookieMaxAge.Seconds()),
		Expires:  time.Now().Add(authCookieMaxAge),
		HTTPOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}

// ClearAuthCookie overwrites the cookie with an empty value that expires
// immediately.
func ClearAuthCookie(c *fiber.Ctx, production bool) {
	sameSite := fiber.CookieSameSiteLaxMode
	if production {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   production,
		SameSite: sameSite,
	})
}

// TokenFromRequest reads the session token from the request's cookies.
// Absence yields the empty string, never an error.
func TokenFromRequest(c *fiber.Ctx) string {
	return c.Cookies(AuthCookieName)
}
