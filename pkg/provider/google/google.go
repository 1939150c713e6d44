// Package google exchanges caller-supplied Google OAuth credentials for a
// normalized external identity.
package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/walletmaster/backend/pkg/config"
)

// Verification failure kinds. Handlers match these exhaustively with
// errors.Is / errors.As and map each to its own response code.
var (
	// ErrMissingCredential: neither an access token nor an ID token was
	// supplied. Returned before any network activity.
	ErrMissingCredential = errors.New("no google credential supplied")
	// ErrInvalidAccessToken: the provider rejected the access token (401).
	ErrInvalidAccessToken = errors.New("invalid or expired google access token")
	// ErrAccessDenied: the provider refused the request (403).
	ErrAccessDenied = errors.New("access denied by google")
	// ErrUnreachable: the provider could not be reached at all.
	ErrUnreachable = errors.New("google userinfo endpoint unreachable")
	// ErrMalformedIDToken: the ID token is not a three-segment JWT.
	ErrMalformedIDToken = errors.New("malformed google id token")
	// ErrIncompletePayload: the ID token payload lacks sub or email.
	ErrIncompletePayload = errors.New("incomplete google id token payload")
	// ErrIncompleteIdentity: the resolved identity lacks an id or email.
	ErrIncompleteIdentity = errors.New("incomplete google identity")
)

// ProviderError carries an unexpected non-2xx userinfo response. 401 and 403
// have dedicated kinds above; everything else lands here with the upstream
// status and body preserved for the caller's response.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("google userinfo returned status %d: %s", e.StatusCode, e.Body)
}

// Identity is the normalized external identity produced by a successful
// verification.
type Identity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
}

// idTokenPayload is the subset of ID-token claims this verifier reads.
type idTokenPayload struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// Verifier resolves Google credentials against the userinfo endpoint.
type Verifier struct {
	userInfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// New creates a Verifier from config. The HTTP client carries an explicit
// timeout so a stalled provider call cannot block a request indefinitely.
func New(cfg *config.Google, logger *slog.Logger) *Verifier {
	return &Verifier{
		userInfoURL: cfg.UserInfoURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Verify exchanges an access token (preferred) or ID token for an identity.
//
// The ID-token path decodes the payload segment without checking the token's
// cryptographic signature, so those claims are trusted as supplied by the
// caller. That matches the accepted input contract; callers relying on strong
// identity proof must send an access token.
func (v *Verifier) Verify(ctx context.Context, accessToken, idToken string) (*Identity, error) {
	if accessToken == "" && idToken == "" {
		return nil, ErrMissingCredential
	}

	var identity *Identity
	var err error
	if accessToken != "" {
		identity, err = v.fetchUserInfo(ctx, accessToken)
	} else {
		identity, err = decodeIDToken(idToken)
	}
	if err != nil {
		return nil, err
	}

	if identity.ID == "" || identity.Email == "" {
		v.logger.Error("google identity missing id or email", "has_id", identity.ID != "")
		return nil, ErrIncompleteIdentity
	}
	v.logger.Info("google identity verified", "google_id", identity.ID, "email", identity.Email)
	return identity, nil
}

func (v *Verifier) fetchUserInfo(ctx context.Context, accessToken string) (*Identity, error) {
	reqURL := fmt.Sprintf("%s?access_token=%s", v.userInfoURL, url.QueryEscape(accessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error("google userinfo request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		v.logger.Error("google userinfo error", "status", resp.StatusCode, "body", string(body))
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, ErrInvalidAccessToken
		case http.StatusForbidden:
			return nil, ErrAccessDenied
		default:
			return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
		}
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return &identity, nil
}

func decodeIDToken(idToken string) (*Identity, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedIDToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, ErrMalformedIDToken
	}

	var payload idTokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrMalformedIDToken
	}
	if payload.Sub == "" || payload.Email == "" {
		return nil, ErrIncompletePayload
	}

	name := payload.Name
	if name == "" {
		name = payload.GivenName
	}
	return &Identity{
		ID:            payload.Sub,
		Email:         payload.Email,
		Name:          name,
		Picture:       payload.Picture,
		VerifiedEmail: payload.EmailVerified,
	}, nil
}
