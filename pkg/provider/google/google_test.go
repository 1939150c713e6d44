package google_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walletmaster/backend/pkg/config"
	"github.com/walletmaster/backend/pkg/provider/google"
	"github.com/walletmaster/backend/pkg/testutils"
)

func newVerifier(url string) *google.Verifier {
	return google.New(&config.Google{
		UserInfoURL: url,
		HTTPTimeout: 2 * time.Second,
	}, testutils.NewTestLogger())
}

// fakeProvider serves a canned status/body and counts requests.
func fakeProvider(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func idTokenWithPayload(t *testing.T, payload map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	return "header." + encoded + ".signature"
}

func TestVerify_AccessToken_OK(t *testing.T) {
	srv, calls := fakeProvider(t, http.StatusOK,
		`{"id":"g1","email":"a@b.com","name":"Alice","picture":"p","verified_email":true}`)

	identity, err := newVerifier(srv.URL).Verify(context.Background(), "valid", "")
	require.NoError(t, err)
	assert.Equal(t, "g1", identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.Equal(t, "Alice", identity.Name)
	assert.True(t, identity.VerifiedEmail)
	assert.EqualValues(t, 1, calls.Load())
}

func TestVerify_AccessToken_Unauthorized(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusUnauthorized, `{"error":"invalid_token"}`)

	_, err := newVerifier(srv.URL).Verify(context.Background(), "expired", "")
	assert.ErrorIs(t, err, google.ErrInvalidAccessToken)
}

func TestVerify_AccessToken_Forbidden(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusForbidden, `{"error":"forbidden"}`)

	_, err := newVerifier(srv.URL).Verify(context.Background(), "blocked", "")
	assert.ErrorIs(t, err, google.ErrAccessDenied)
}

func TestVerify_AccessToken_ProviderError(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusBadGateway, "upstream broke")

	_, err := newVerifier(srv.URL).Verify(context.Background(), "any", "")
	var providerErr *google.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
	assert.Equal(t, "upstream broke", providerErr.Body)
}

func TestVerify_AccessToken_Unreachable(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, "{}")
	srv.Close() // nothing listening anymore

	_, err := newVerifier(srv.URL).Verify(context.Background(), "any", "")
	assert.ErrorIs(t, err, google.ErrUnreachable)
}

func TestVerify_AccessToken_IncompleteIdentity(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, `{"id":"","email":""}`)

	_, err := newVerifier(srv.URL).Verify(context.Background(), "any", "")
	assert.ErrorIs(t, err, google.ErrIncompleteIdentity)
}

func TestVerify_MissingCredential_NoNetworkCall(t *testing.T) {
	srv, calls := fakeProvider(t, http.StatusOK, "{}")

	_, err := newVerifier(srv.URL).Verify(context.Background(), "", "")
	assert.ErrorIs(t, err, google.ErrMissingCredential)
	assert.EqualValues(t, 0, calls.Load())
}

func TestVerify_IDToken_OK(t *testing.T) {
	srv, calls := fakeProvider(t, http.StatusOK, "{}")
	token := idTokenWithPayload(t, map[string]any{
		"sub":            "g9",
		"email":          "c@d.com",
		"name":           "Carol",
		"picture":        "pic",
		"email_verified": true,
	})

	identity, err := newVerifier(srv.URL).Verify(context.Background(), "", token)
	require.NoError(t, err)
	assert.Equal(t, "g9", identity.ID)
	assert.Equal(t, "c@d.com", identity.Email)
	assert.Equal(t, "Carol", identity.Name)
	// The ID-token path never talks to the provider.
	assert.EqualValues(t, 0, calls.Load())
}

func TestVerify_IDToken_GivenNameFallback(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, "{}")
	token := idTokenWithPayload(t, map[string]any{
		"sub":        "g10",
		"email":      "d@e.com",
		"given_name": "Dave",
	})

	identity, err := newVerifier(srv.URL).Verify(context.Background(), "", token)
	require.NoError(t, err)
	assert.Equal(t, "Dave", identity.Name)
}

func TestVerify_IDToken_Malformed(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, "{}")
	v := newVerifier(srv.URL)

	for _, bad := range []string{
		"onlyonesegment",
		"two.segments",
		"a.b.c.d",
		"header.!!!notbase64!!!.sig",
	} {
		_, err := v.Verify(context.Background(), "", bad)
		assert.ErrorIs(t, err, google.ErrMalformedIDToken, "token %q", bad)
	}
}

func TestVerify_IDToken_IncompletePayload(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusOK, "{}")
	v := newVerifier(srv.URL)

	for _, payload := range []map[string]any{
		{"email": "a@b.com"},
		{"sub": "g1"},
		{},
	} {
		token := idTokenWithPayload(t, payload)
		_, err := v.Verify(context.Background(), "", token)
		assert.ErrorIs(t, err, google.ErrIncompletePayload)
	}
}

func TestVerify_AccessTokenPreferredOverIDToken(t *testing.T) {
	srv, calls := fakeProvider(t, http.StatusOK,
		`{"id":"from-access","email":"a@b.com"}`)
	idToken := idTokenWithPayload(t, map[string]any{"sub": "from-id", "email": "x@y.com"})

	identity, err := newVerifier(srv.URL).Verify(context.Background(), "valid", idToken)
	require.NoError(t, err)
	assert.Equal(t, "from-access", identity.ID)
	assert.EqualValues(t, 1, calls.Load())
}
