// Package common provides the response helpers and request binding shared by
// every handler package.
package common

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the structured error payload returned on every failure:
// a human-readable message, a stable machine-readable code, and optional
// details.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Stable error codes surfaced to clients. Handlers pick these exhaustively
// from tagged error kinds; nothing inspects error strings.
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeAuthenticationRequired = "AUTHENTICATION_REQUIRED"
	CodeNotAuthenticated       = "NOT_AUTHENTICATED"
	CodeAccessDenied           = "ACCESS_DENIED"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeTransactionNotFound    = "TRANSACTION_NOT_FOUND"
	CodeInvalidAccessToken     = "INVALID_ACCESS_TOKEN"
	CodeGoogleAPIError         = "GOOGLE_API_ERROR"
	CodeGoogleServiceError     = "GOOGLE_SERVICE_ERROR"
	CodeInvalidIDTokenFormat   = "INVALID_ID_TOKEN_FORMAT"
	CodeInvalidIDTokenPayload  = "INVALID_ID_TOKEN_PAYLOAD"
	CodeIncompleteUserData     = "INCOMPLETE_USER_DATA"
	CodeUserValidationError    = "USER_VALIDATION_ERROR"
	CodeCreationError          = "CREATION_ERROR"
	CodeUpdateError            = "UPDATE_ERROR"
	CodeFetchError             = "FETCH_ERROR"
	CodeInternalError          = "INTERNAL_ERROR"
)

// ErrorJSON writes the structured error payload with the given status.
func ErrorJSON(c *fiber.Ctx, status int, message, code string, details ...any) error {
	body := ErrorBody{Message: message, Error: code}
	if len(details) > 0 && details[0] != nil {
		body.Details = details[0]
	}
	return c.Status(status).JSON(body)
}

var validate = validator.New()

// BindAndValidate parses the request body into T and validates it. On
// failure it writes a VALIDATION_ERROR response and returns nil plus the
// original error, so callers just `return err` when the pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid request body.", CodeValidationError, err.Error(),
		)
	}
	if err := validate.Struct(&input); err != nil {
		return nil, ErrorJSON(
			c, fiber.StatusBadRequest,
			"Invalid request data.", CodeValidationError, err.Error(),
		)
	}
	return &input, nil
}
