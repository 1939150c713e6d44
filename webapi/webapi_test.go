package webapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walletmaster/backend/webapi/testutils"
)

func TestHealth(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.MakeRequest(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutils.DecodeJSON[map[string]string](t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "development", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCors_AllowsCredentials(t *testing.T) {
	env := testutils.NewEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := env.App.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
