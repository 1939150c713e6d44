// Package testutils wires an in-process application for handler tests:
// memory storage, a stub identity verifier, and request helpers.
package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/walletmaster/backend/infra/repository/memory"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/middleware"
	"github.com/walletmaster/backend/pkg/provider/google"
	"github.com/walletmaster/backend/pkg/repository"
	authsvc "github.com/walletmaster/backend/pkg/service/auth"
	txsvc "github.com/walletmaster/backend/pkg/service/transaction"
	usersvc "github.com/walletmaster/backend/pkg/service/user"
	"github.com/walletmaster/backend/pkg/testutils"
	"github.com/walletmaster/backend/webapi"
)

// StubVerifier satisfies the auth service's verifier dependency with a
// canned identity or failure, counting calls.
type StubVerifier struct {
	Identity *google.Identity
	Err      error
	Calls    int
}

func (v *StubVerifier) Verify(_ context.Context, _, _ string) (*google.Identity, error) {
	v.Calls++
	if v.Err != nil {
		return nil, v.Err
	}
	return v.Identity, nil
}

// Env is an in-process application instance backed by memory storage.
type Env struct {
	App      *fiber.App
	Storage  repository.Storage
	Auth     *authsvc.Service
	Verifier *StubVerifier
	Cfg      *config.App
}

// NewEnv builds the application the way main does, with the durable pieces
// swapped for test doubles. The default identity can be overridden through
// Verifier before issuing requests.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	cfg := &config.App{
		Env:  "development",
		Jwt:  &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		Cors: &config.Cors{AllowOrigins: "http://localhost:5173"},
	}
	store := memory.NewStorage()
	verifier := &StubVerifier{Identity: &google.Identity{
		ID:    "google-test-id",
		Email: "test@example.com",
		Name:  "Test User",
	}}

	logger := testutils.NewTestLogger()
	authSvc := authsvc.New(store.Users(), verifier, cfg.Jwt, logger)
	userSvc := usersvc.New(store.Users(), logger)
	txSvc := txsvc.New(store.Transactions(), logger)

	return &Env{
		App:      webapi.SetupApp(cfg, authSvc, userSvc, txSvc),
		Storage:  store,
		Auth:     authSvc,
		Verifier: verifier,
		Cfg:      cfg,
	}
}

// MakeRequest issues a request against the in-process app. A nil body sends
// no payload; a non-nil body is JSON-encoded. The cookie, when given, is
// attached as-is.
func (e *Env) MakeRequest(
	t *testing.T,
	method, path string,
	body any,
	cookie *http.Cookie,
) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.App.Test(req)
	require.NoError(t, err)
	return resp
}

// Login runs the Google auth flow against the stub verifier and returns the
// issued session cookie.
func (e *Env) Login(t *testing.T) *http.Cookie {
	t.Helper()

	resp := e.MakeRequest(t, http.MethodPost, "/api/auth/google",
		map[string]string{"access_token": "stub-token"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login against stub verifier must succeed")
	return AuthCookie(t, resp)
}

// AuthCookie extracts the session cookie from a response, failing the test
// when it is absent.
func AuthCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.AuthCookieName {
			return c
		}
	}
	t.Fatal("auth cookie not set")
	return nil
}

// DecodeJSON unmarshals the response body into T.
func DecodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
