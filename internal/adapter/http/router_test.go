package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	adapter "github.com/mxb-1/transactions/internal/adapter/http"
	"github.com/mxb-1/transactions/internal/adapter/http/dto"
	"github.com/mxb-1/transactions/internal/adapter/http/handler"
	"github.com/mxb-1/transactions/internal/engine"
	"github.com/mxb-1/transactions/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ledgerUC := usecase.NewLedgerUseCase(engine.New(), nil)

	router := adapter.NewRouter(adapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(ledgerUC),
		AccountHandler:     handler.NewAccountHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(),
		Logger:             zerolog.Nop(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func submit(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/v1/transactions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SubmitTransaction(t *testing.T) {
	server := newTestServer(t)

	resp := submit(t, server, `{"type":"deposit","client":1,"tx":1,"amount":"1.5"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var outcome dto.OutcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcome))
	require.True(t, outcome.Applied)
	require.Empty(t, outcome.Reason)
}

func TestRouter_SubmitTransaction_RejectedOutcome(t *testing.T) {
	server := newTestServer(t)

	resp := submit(t, server, `{"type":"withdrawal","client":1,"tx":1,"amount":"5"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var outcome dto.OutcomeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&outcome))
	require.False(t, outcome.Applied)
	require.Equal(t, "insufficient_funds", outcome.Reason)
}

func TestRouter_SubmitTransaction_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid JSON", body: `{`},
		{name: "unknown type", body: `{"type":"transfer","client":1,"tx":1,"amount":"1"}`},
		{name: "missing amount", body: `{"type":"deposit","client":1,"tx":1}`},
		{name: "bad amount", body: `{"type":"deposit","client":1,"tx":1,"amount":"abc"}`},
	}

	server := newTestServer(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := submit(t, server, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRouter_Accounts(t *testing.T) {
	server := newTestServer(t)

	resp := submit(t, server, `{"type":"deposit","client":7,"tx":1,"amount":"2.5"}`)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	listResp, err := http.Get(server.URL + "/api/v1/accounts")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list dto.ListAccountsResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Equal(t, int64(1), list.Total)
	require.Equal(t, "2.5000", list.Accounts[0].Available)

	getResp, err := http.Get(server.URL + "/api/v1/accounts/7")
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var account dto.AccountResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&account))
	require.Equal(t, uint16(7), account.ClientID)
	require.Equal(t, "2.5000", account.Total)
	require.False(t, account.Locked)
}

func TestRouter_GetAccount_Errors(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/accounts/9")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/v1/accounts/notanid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
