package auth

import "github.com/walletmaster/backend/pkg/dto"

// GoogleAuthInput is the login request body. At least one token must be
// present; that cross-field rule is checked in the handler before any
// provider call.
type GoogleAuthInput struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

// AuthUserResponse merges the full user record with a success message, the
// shape the frontend expects from the login endpoint.
type AuthUserResponse struct {
	Message string `json:"message"`
	*dto.UserRead
}

// ValidateResponse is returned by the session validation endpoint.
type ValidateResponse struct {
	Valid bool        `json:"valid"`
	User  SessionUser `json:"user"`
}

// SessionUser is the principal as carried by the session token. Validation
// answers from the token alone; it does not hit storage.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
