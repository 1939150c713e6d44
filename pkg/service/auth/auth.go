// Package auth implements the session issuer and the Google login
// orchestration. Sessions are stateless: a signed, time-limited JWT held by
// the client is the only session record, so any server instance can validate
// any request independently.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/domain"
	"github.com/walletmaster/backend/pkg/dto"
	"github.com/walletmaster/backend/pkg/provider/google"
	repouser "github.com/walletmaster/backend/pkg/repository/user"
)

// Claims is the authenticated principal carried by a session token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// Verifier resolves Google credentials into an external identity.
type Verifier interface {
	Verify(ctx context.Context, accessToken, idToken string) (*google.Identity, error)
}

// Service orchestrates Google login and mints/validates session tokens.
type Service struct {
	users    repouser.Repository
	verifier Verifier
	cfg      *config.Jwt
	logger   *slog.Logger
}

func New(
	users repouser.Repository,
	verifier Verifier,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{users: users, verifier: verifier, cfg: cfg, logger: logger}
}

// LoginWithGoogle verifies the supplied credential, then links or creates the
// local user keyed by the external identity. Repeat logins reuse the stored
// record as-is; provider fields are not synced back onto existing users.
func (s *Service) LoginWithGoogle(
	ctx context.Context,
	accessToken, idToken string,
) (*dto.UserRead, error) {
	log := s.logger.With("context", "LoginWithGoogle")

	identity, err := s.verifier.Verify(ctx, accessToken, idToken)
	if err != nil {
		log.Error("google verification failed", "error", err)
		return nil, err
	}

	u, err := s.users.GetByGoogleID(ctx, identity.ID)
	if err != nil {
		log.Error("user lookup failed", "google_id", identity.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	if u != nil {
		log.Info("existing user found", "user_id", u.ID)
		return u, nil
	}

	name := identity.Name
	if name == "" {
		name = localPart(identity.Email)
	}
	u, err = s.users.Create(ctx, &dto.UserCreate{
		Email:    identity.Email,
		GoogleID: identity.ID,
		Name:     name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			log.Error("user creation hit uniqueness violation", "google_id", identity.ID)
			return nil, err
		}
		log.Error("user creation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	log.Info("new user created", "user_id", u.ID)
	return u, nil
}

// IssueToken mints a signed session token over the user's identity claims
// with a fixed expiry window. Claims are embedded verbatim.
func (s *Service) IssueToken(u *dto.UserRead) (string, error) {
	now := time.Now()
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = u.ID.String()
	claims["email"] = u.Email
	claims["name"] = u.Name
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.cfg.Expiry).Unix()

	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("token signing failed", "user_id", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and recovers the claims. Any
// failure (bad signature, expired, malformed) yields nil; it never returns
// an error, pushing the 401 decision to the require stage.
func (s *Service) VerifyToken(tokenString string) *Claims {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	rawID, ok := mapClaims["user_id"].(string)
	if !ok {
		return nil
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil
	}

	claims := &Claims{UserID: userID}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		claims.Name = name
	}
	return claims
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
