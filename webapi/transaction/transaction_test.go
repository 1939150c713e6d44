package transaction_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walletmaster/backend/pkg/dto"
	"github.com/walletmaster/backend/webapi/common"
	"github.com/walletmaster/backend/webapi/testutils"
)

const recipient = "0x8ba1f109551bd432803012645ac136ddd64dba72"

func createTransaction(t *testing.T, env *testutils.Env, cookie *http.Cookie) dto.TransactionRead {
	t.Helper()
	resp := env.MakeRequest(t, http.MethodPost, "/api/transactions",
		map[string]string{
			"type":      "transfer",
			"recipient": recipient,
			"amount":    "10",
		}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return testutils.DecodeJSON[dto.TransactionRead](t, resp)
}

// loginOther authenticates a second, distinct user.
func loginOther(t *testing.T, env *testutils.Env) *http.Cookie {
	t.Helper()
	env.Verifier.Identity.ID = "google-other-id"
	env.Verifier.Identity.Email = "other@example.com"
	return env.Login(t)
}

func TestCreateTransaction_Defaults(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	tx := createTransaction(t, env, cookie)
	assert.Equal(t, dto.TransactionPending, tx.Status)
	assert.Equal(t, "USDC", tx.TokenSymbol)
	assert.True(t, tx.Gasless)
	assert.Nil(t, tx.Hash)
}

func TestCreateTransaction_OwnerIsAlwaysPrincipal(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)
	tx := createTransaction(t, env, cookie)

	// A caller-supplied userId is ignored.
	resp := env.MakeRequest(t, http.MethodPost, "/api/transactions",
		map[string]string{
			"type":      "transfer",
			"recipient": recipient,
			"amount":    "5",
			"userId":    "00000000-0000-0000-0000-000000000001",
		}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	spoofed := testutils.DecodeJSON[dto.TransactionRead](t, resp)
	assert.Equal(t, tx.UserID, spoofed.UserID)
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	for name, body := range map[string]map[string]string{
		"bad type":          {"type": "withdrawal", "recipient": recipient, "amount": "1"},
		"missing recipient": {"type": "transfer", "amount": "1"},
		"missing amount":    {"type": "transfer", "recipient": recipient},
	} {
		resp := env.MakeRequest(t, http.MethodPost, "/api/transactions", body, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, name)

		errBody := testutils.DecodeJSON[common.ErrorBody](t, resp)
		assert.Equal(t, common.CodeValidationError, errBody.Error, name)
	}
}

func TestCreateTransaction_NoSession(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.MakeRequest(t, http.MethodPost, "/api/transactions",
		map[string]string{
			"type":      "transfer",
			"recipient": recipient,
			"amount":    "1",
		}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeAuthenticationRequired, body.Error)
}

func TestGetTransaction_Owner(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)
	tx := createTransaction(t, env, cookie)

	resp := env.MakeRequest(t, http.MethodGet, "/api/transactions/"+tx.ID.String(), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fetched := testutils.DecodeJSON[dto.TransactionRead](t, resp)
	assert.Equal(t, tx.ID, fetched.ID)
}

func TestGetTransaction_OtherUser(t *testing.T) {
	env := testutils.NewEnv(t)
	ownerCookie := env.Login(t)
	tx := createTransaction(t, env, ownerCookie)

	otherCookie := loginOther(t, env)
	resp := env.MakeRequest(t, http.MethodGet, "/api/transactions/"+tx.ID.String(), nil, otherCookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeAccessDenied, body.Error)
	assert.Equal(t, "You can only access your own transactions", body.Message)
}

func TestGetTransaction_UnknownAndMalformedID(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	for _, id := range []string{
		"00000000-0000-0000-0000-0000000000aa",
		"not-a-uuid",
	} {
		resp := env.MakeRequest(t, http.MethodGet, "/api/transactions/"+id, nil, cookie)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "id %q", id)

		body := testutils.DecodeJSON[common.ErrorBody](t, resp)
		assert.Equal(t, common.CodeTransactionNotFound, body.Error)
	}
}

func TestUpdateTransaction_Owner(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)
	tx := createTransaction(t, env, cookie)

	resp := env.MakeRequest(t, http.MethodPatch, "/api/transactions/"+tx.ID.String(),
		map[string]string{"status": "completed", "hash": "0xhash"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := testutils.DecodeJSON[dto.TransactionRead](t, resp)
	assert.Equal(t, dto.TransactionCompleted, updated.Status)
	require.NotNil(t, updated.Hash)
	assert.Equal(t, "0xhash", *updated.Hash)
	assert.Equal(t, tx.UserID, updated.UserID)
}

func TestUpdateTransaction_InvalidStatus(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)
	tx := createTransaction(t, env, cookie)

	resp := env.MakeRequest(t, http.MethodPatch, "/api/transactions/"+tx.ID.String(),
		map[string]string{"status": "finished"}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeValidationError, body.Error)
}

func TestUpdateTransaction_OtherUser(t *testing.T) {
	env := testutils.NewEnv(t)
	ownerCookie := env.Login(t)
	tx := createTransaction(t, env, ownerCookie)

	otherCookie := loginOther(t, env)

	// Ownership is checked before the body is even parsed, so an invalid
	// payload from a non-owner still reads as forbidden.
	resp := env.MakeRequest(t, http.MethodPatch, "/api/transactions/"+tx.ID.String(),
		map[string]string{"status": "nonsense"}, otherCookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeAccessDenied, body.Error)

	// And the record is untouched.
	reload := env.MakeRequest(t, http.MethodGet, "/api/transactions/"+tx.ID.String(), nil, ownerCookie)
	require.Equal(t, http.StatusOK, reload.StatusCode)
	fetched := testutils.DecodeJSON[dto.TransactionRead](t, reload)
	assert.Equal(t, dto.TransactionPending, fetched.Status)
}

func TestUpdateTransaction_UnknownID(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	resp := env.MakeRequest(t, http.MethodPatch,
		"/api/transactions/00000000-0000-0000-0000-0000000000bb",
		map[string]string{"status": "completed"}, cookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeTransactionNotFound, body.Error)
}
