package user_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walletmaster/backend/pkg/dto"
	"github.com/walletmaster/backend/webapi/common"
	"github.com/walletmaster/backend/webapi/testutils"
)

const validWallet = "0x8ba1f109551bd432803012645ac136ddd64dba72"

func TestUpdateWallet_Put(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	resp := env.MakeRequest(t, http.MethodPut, "/api/user/wallet",
		map[string]string{"walletAddress": validWallet}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutils.DecodeJSON[dto.UserRead](t, resp)
	require.NotNil(t, body.WalletAddress)
	assert.Equal(t, validWallet, *body.WalletAddress)
}

func TestUpdateWallet_Patch(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	resp := env.MakeRequest(t, http.MethodPatch, "/api/user/wallet",
		map[string]string{"walletAddress": validWallet}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateWallet_InvalidAddress(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	for _, bad := range []string{"", "not-an-address", "0x123", validWallet + "ff"} {
		resp := env.MakeRequest(t, http.MethodPut, "/api/user/wallet",
			map[string]string{"walletAddress": bad}, cookie)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "address %q", bad)

		body := testutils.DecodeJSON[common.ErrorBody](t, resp)
		assert.Equal(t, common.CodeValidationError, body.Error)
	}

	// The record stays untouched after rejected updates.
	me := env.MakeRequest(t, http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.StatusCode)
	user := testutils.DecodeJSON[dto.UserRead](t, me)
	assert.Nil(t, user.WalletAddress)
}

func TestUpdateWallet_NoSession(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.MakeRequest(t, http.MethodPut, "/api/user/wallet",
		map[string]string{"walletAddress": validWallet}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeAuthenticationRequired, body.Error)
}

func TestListTransactions_NoSession(t *testing.T) {
	env := testutils.NewEnv(t)

	resp := env.MakeRequest(t, http.MethodGet, "/api/user/transactions", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := testutils.DecodeJSON[common.ErrorBody](t, resp)
	assert.Equal(t, common.CodeAuthenticationRequired, body.Error)
}

func TestListTransactions_EmptyForNewUser(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	resp := env.MakeRequest(t, http.MethodGet, "/api/user/transactions", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	txs := testutils.DecodeJSON[[]dto.TransactionRead](t, resp)
	assert.Empty(t, txs)
}

func TestListTransactions_OwnOnlyNewestFirst(t *testing.T) {
	env := testutils.NewEnv(t)
	cookie := env.Login(t)

	for _, amount := range []string{"1", "2", "3"} {
		resp := env.MakeRequest(t, http.MethodPost, "/api/transactions",
			map[string]string{
				"type":      "transfer",
				"recipient": validWallet,
				"amount":    amount,
			}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// A second user's transaction must not leak into the listing.
	env.Verifier.Identity.ID = "google-other-id"
	env.Verifier.Identity.Email = "other@example.com"
	otherCookie := env.Login(t)
	resp := env.MakeRequest(t, http.MethodPost, "/api/transactions",
		map[string]string{
			"type":      "transfer",
			"recipient": validWallet,
			"amount":    "99",
		}, otherCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.MakeRequest(t, http.MethodGet, "/api/user/transactions", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	txs := testutils.DecodeJSON[[]dto.TransactionRead](t, resp)
	require.Len(t, txs, 3)
	assert.Equal(t, "3", txs[0].Amount)
	assert.Equal(t, "2", txs[1].Amount)
	assert.Equal(t, "1", txs[2].Amount)
}
