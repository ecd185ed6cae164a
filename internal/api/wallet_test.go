package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	walletPath := fmt.Sprintf("/baucua/wallet?familyId=%d", env.family.ID)

	code, body := env.do(t, http.MethodGet, walletPath, "binh", nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.EqualValues(t, 1000, body["wallet"].(map[string]any)["balance"])
	assert.Equal(t, false, body["cached"])

	code, _ = env.do(t, http.MethodGet, walletPath, "cuong", nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = env.do(t, http.MethodGet, "/baucua/wallet?familyId=abc", "binh", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = env.do(t, http.MethodGet, fmt.Sprintf("/baucua/wallet/transactions?familyId=%d", env.family.ID), "binh", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])
	txs := body["transactions"].([]any)
	require.Len(t, txs, 1)
	assert.Equal(t, "opening", txs[0].(map[string]any)["type"])
}

func TestFamilyEndpoints(t *testing.T) {
	env := newAPIEnv(t)

	code, body := env.do(t, http.MethodPost, "/families", "cuong", map[string]string{"name": "Nhà Cường"})
	require.Equal(t, http.StatusCreated, code, body)
	familyID := uint(body["family"].(map[string]any)["id"].(float64))
	membersPath := fmt.Sprintf("/families/%d/members", familyID)

	code, _ = env.do(t, http.MethodPost, "/families", "cuong", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, membersPath, "binh", map[string]string{"username": "binh"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = env.do(t, http.MethodPost, membersPath, "cuong", map[string]string{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = env.do(t, http.MethodPost, membersPath, "cuong", map[string]string{"username": "binh"})
	assert.Equal(t, http.StatusOK, code)

	code, body = env.do(t, http.MethodGet, membersPath, "binh", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["members"], 2)
	code, _ = env.do(t, http.MethodGet, membersPath, "an", nil)
	assert.Equal(t, http.StatusForbidden, code)
}
