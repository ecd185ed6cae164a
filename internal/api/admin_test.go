package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantRequiresAdmin(t *testing.T) {
	env := newAPIEnv(t)
	grant := map[string]any{"familyId": env.family.ID, "userId": env.userIDs["binh"], "amount": 250}

	code, _ := env.do(t, http.MethodPost, "/admin/wallets/grant", "an", grant)
	assert.Equal(t, http.StatusForbidden, code)

	code, body := env.do(t, http.MethodPost, "/admin/wallets/grant", "admin", grant)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 1250, body["wallet"].(map[string]any)["balance"])

	code, _ = env.do(t, http.MethodPost, "/admin/wallets/grant", "admin",
		map[string]any{"familyId": env.family.ID, "userId": env.userIDs["cuong"], "amount": 250})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = env.do(t, http.MethodPost, "/admin/wallets/grant", "admin",
		map[string]any{"familyId": env.family.ID, "userId": env.userIDs["binh"], "amount": 0})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = env.do(t, http.MethodPost, "/admin/wallets/grant", "admin",
		map[string]any{"familyId": env.family.ID, "amount": 10})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminListings(t *testing.T) {
	env := newAPIEnv(t)
	code, _ := env.do(t, http.MethodPost, "/admin/wallets/grant", "admin",
		map[string]any{"familyId": env.family.ID, "userId": env.userIDs["binh"], "amount": 40})
	require.Equal(t, http.StatusOK, code)

	code, body := env.do(t, http.MethodGet, "/admin/users?page_size=10", "admin", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 4, body["total"])
	var binhWallets []any
	for _, u := range body["users"].([]any) {
		if u.(map[string]any)["username"] == "binh" {
			binhWallets = u.(map[string]any)["wallets"].([]any)
		}
	}
	require.Len(t, binhWallets, 1)
	assert.EqualValues(t, 1040, binhWallets[0].(map[string]any)["balance"])

	code, body = env.do(t, http.MethodGet, fmt.Sprintf("/admin/transactions?user_id=%d&type=grant", env.userIDs["binh"]), "admin", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])

	code, _ = env.do(t, http.MethodGet, "/admin/transactions", "binh", nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newAPIEnv(t)

	code, body := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, _ = env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
