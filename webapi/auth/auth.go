// Package auth exposes the authentication endpoints: Google login, session
// validation, logout, and the current-user lookup.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/middleware"
	"github.com/walletmaster/backend/pkg/provider/google"
	authsvc "github.com/walletmaster/backend/pkg/service/auth"
	usersvc "github.com/walletmaster/backend/pkg/service/user"
	"github.com/walletmaster/backend/webapi/common"
)

// Routes registers the auth endpoints.
func Routes(app *fiber.App, authSvc *authsvc.Service, userSvc *usersvc.Service, cfg *config.App) {
	app.Post("/api/auth/google", GoogleLogin(authSvc, cfg))
	app.Get("/api/auth/validate", Validate())
	app.Post("/api/auth/logout", Logout(cfg))
	app.Get("/api/auth/me", middleware.RequireAuth(), Me(userSvc))
}

// GoogleLogin authenticates with a Google access or ID token, linking or
// creating the local user, and sets the session cookie.
// @Summary Login with Google
// @Description Exchange a Google access_token or id_token for a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthInput true "Google tokens"
// @Success 200 {object} AuthUserResponse
// @Failure 400 {object} common.ErrorBody
// @Failure 401 {object} common.ErrorBody
// @Failure 403 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Failure 503 {object} common.ErrorBody
// @Router /api/auth/google [post]
func GoogleLogin(authSvc *authsvc.Service, cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[GoogleAuthInput](c)
		if input == nil {
			return err // error response already written
		}
		if input.AccessToken == "" && input.IDToken == "" {
			return common.ErrorJSON(
				c, fiber.StatusBadRequest,
				"Invalid request data. Please check your authentication tokens.",
				common.CodeValidationError,
				"Either access_token or id_token must be provided",
			)
		}

		u, err := authSvc.LoginWithGoogle(c.Context(), input.AccessToken, input.IDToken)
		if err != nil {
			return googleLoginError(c, cfg, err)
		}

		token, err := authSvc.IssueToken(u)
		if err != nil {
			log.Errorf("Failed to issue session token: %v", err)
			return internalError(c, cfg, err)
		}
		middleware.SetAuthCookie(c, token, cfg.IsProduction())

		return c.JSON(AuthUserResponse{
			Message:  "Authentication successful",
			UserRead: u,
		})
	}
}

// googleLoginError maps every verification and storage failure kind to its
// response. The set of provider kinds is matched exhaustively; a new kind
// falls through to the generic 500.
func googleLoginError(c *fiber.Ctx, cfg *config.App, err error) error {
	var providerErr *google.ProviderError
	switch {
	case errors.Is(err, google.ErrMissingCredential):
		return common.ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid request data. Please check your authentication tokens.",
			common.CodeValidationError,
		)
	case errors.Is(err, google.ErrInvalidAccessToken):
		return common.ErrorJSON(
			c, fiber.StatusUnauthorized,
			"Invalid or expired Google token. Please try signing in again.",
			common.CodeInvalidAccessToken,
		)
	case errors.Is(err, google.ErrAccessDenied):
		return common.ErrorJSON(
			c, fiber.StatusForbidden,
			"Access denied by Google. Please check your account permissions.",
			common.CodeAccessDenied,
		)
	case errors.As(err, &providerErr):
		return common.ErrorJSON(
			c, providerErr.StatusCode,
			"Google authentication service error: "+providerErr.Body,
			common.CodeGoogleAPIError,
		)
	case errors.Is(err, google.ErrUnreachable):
		return common.ErrorJSON(
			c, fiber.StatusServiceUnavailable,
			"Unable to verify credentials with Google. Please try again.",
			common.CodeGoogleServiceError,
		)
	case errors.Is(err, google.ErrMalformedIDToken):
		return common.ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid ID token format.",
			common.CodeInvalidIDTokenFormat,
		)
	case errors.Is(err, google.ErrIncompletePayload):
		return common.ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid ID token payload. Missing required user information.",
			common.CodeInvalidIDTokenPayload,
		)
	case errors.Is(err, google.ErrIncompleteIdentity):
		return common.ErrorJSON(
			c, fiber.StatusBadRequest,
			"Incomplete user information from Google.",
			common.CodeIncompleteUserData,
		)
	case errors.Is(err, domain.ErrAlreadyExists):
		return common.ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid user data from Google.",
			common.CodeUserValidationError,
		)
	default:
		return internalError(c, cfg, err)
	}
}

func internalError(c *fiber.Ctx, cfg *config.App, err error) error {
	var details any
	if !cfg.IsProduction() {
		details = err.Error()
	}
	return common.ErrorJSON(
		c, fiber.StatusInternalServerError,
		"Authentication service temporarily unavailable. Please try again later.",
		common.CodeInternalError,
		details,
	)
}

// Validate reports whether the request carries a valid session. It answers
// from the resolved principal alone, which is what lets it distinguish
// missing from invalid credentials without a second cookie parse.
// @Summary Validate session
// @Tags auth
// @Produce json
// @Success 200 {object} ValidateResponse
// @Failure 401 {object} common.ErrorBody
// @Router /api/auth/validate [get]
func Validate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := middleware.PrincipalFromCtx(c)
		if principal == nil {
			return common.ErrorJSON(
				c, fiber.StatusUnauthorized,
				"No valid session found",
				common.CodeNotAuthenticated,
			)
		}
		return c.JSON(ValidateResponse{
			Valid: true,
			User: SessionUser{
				ID:    principal.UserID.String(),
				Email: principal.Email,
				Name:  principal.Name,
			},
		})
	}
}

// Logout clears the session cookie. Sessions are stateless, so there is
// nothing to destroy server-side.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func Logout(cfg *config.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.ClearAuthCookie(c, cfg.IsProduction())
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// Me returns the authenticated user's fresh record from storage.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserRead
// @Failure 401 {object} common.ErrorBody
// @Failure 404 {object} common.ErrorBody
// @Failure 500 {object} common.ErrorBody
// @Router /api/auth/me [get]
func Me(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := middleware.PrincipalFromCtx(c)
		u, err := userSvc.GetUser(c.Context(), principal.UserID)
		if err != nil {
			log.Errorf("Failed to load current user: %v", err)
			return common.ErrorJSON(
				c, fiber.StatusInternalServerError,
				"Failed to get user data",
				common.CodeFetchError,
			)
		}
		if u == nil {
			return common.ErrorJSON(
				c, fiber.StatusNotFound,
				"User not found",
				common.CodeUserNotFound,
			)
		}
		return c.JSON(u)
	}
}
