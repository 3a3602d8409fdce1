package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dsc/core"
	"dsc/pkg/number"
	"dsc/service/engine"
	"dsc/service/oracle"
	"dsc/service/session"
	"dsc/service/token"
	"dsc/store/event"
	"dsc/store/position"
	"dsc/store/price"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secret"

type testServer struct {
	*httptest.Server
	weth *token.Token
}

func newTestServer(t *testing.T) *testServer {
	cfg := &core.Config{
		App:         core.App{Self: "engine", DscSymbol: "DSC", JWTSecret: secret},
		Collaterals: []core.AssetConf{{AssetID: "weth", Symbol: "WETH", FeedID: "eth-usd"}},
		Admins:      []string{"admin"},
	}

	weth := token.New("WETH", token.GenesisMinter)
	registry, err := core.NewAssetRegistry(&core.CollateralAsset{
		AssetID: "weth",
		Symbol:  "WETH",
		Feed:    oracle.NewStatic("eth-usd", number.Decimal("2000")),
		Token:   weth,
	})
	require.Nil(t, err)

	events := event.NewMemory()
	e, err := engine.New(cfg.App.Self, registry, token.New("DSC", cfg.App.Self), position.NewMemory(), events)
	require.Nil(t, err)

	server := New(cfg, engine.Serialize(e), session.New(session.Config{Secret: secret}), events, price.NewMemory())

	mux := chi.NewMux()
	mux.Mount("/api", server.HandleRestAPI())

	ts := &testServer{Server: httptest.NewServer(mux), weth: weth}
	t.Cleanup(ts.Close)
	return ts
}

type response struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
}

func (ts *testServer) do(t *testing.T, method, path, account string, body interface{}) (int, *response) {
	var buf bytes.Buffer
	if body != nil {
		require.Nil(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.Nil(t, err)

	if account != "" {
		accessToken, err := session.Issue(secret, "", account, time.Hour)
		require.Nil(t, err)
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.Nil(t, err)
	defer resp.Body.Close()

	var r response
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&r))
	return resp.StatusCode, &r
}

func TestRestAPI(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	amount, _ := number.ToUnits(number.Decimal("10"))
	require.Nil(t, ts.weth.Mint(ctx, token.GenesisMinter, "alice", amount))

	status, _ := ts.do(t, http.MethodPost, "/api/collateral/deposit", "", map[string]string{"asset_id": "weth", "amount": "1"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = ts.do(t, http.MethodPost, "/api/tokens/weth/approve", "alice", map[string]string{"amount": "10"})
	require.Equal(t, http.StatusOK, status)

	status, resp := ts.do(t, http.MethodPost, "/api/deposit-and-mint", "alice", map[string]string{
		"asset_id":   "weth",
		"collateral": "10",
		"dsc":        "10000",
	})
	require.Equal(t, http.StatusOK, status, resp.Msg)

	status, resp = ts.do(t, http.MethodGet, "/api/accounts/alice", "", nil)
	require.Equal(t, http.StatusOK, status)

	var account struct {
		DscMinted          string `json:"dsc_minted"`
		DscBalance         string `json:"dsc_balance"`
		CollateralValueUSD string `json:"collateral_value_usd"`
		HealthFactor       string `json:"health_factor"`
		Healthy            bool   `json:"healthy"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &account))
	assert.Equal(t, "10000", account.DscMinted)
	assert.Equal(t, "10000", account.DscBalance)
	assert.Equal(t, "20000", account.CollateralValueUSD)
	assert.Equal(t, "1", account.HealthFactor)
	assert.True(t, account.Healthy)

	status, resp = ts.do(t, http.MethodPost, "/api/dsc/mint", "alice", map[string]string{"amount": "1"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, int(core.ErrSolvency), resp.Code)

	status, resp = ts.do(t, http.MethodPost, "/api/collateral/deposit", "alice", map[string]string{"asset_id": "doge", "amount": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(core.ErrUnsupportedAsset), resp.Code)

	status, resp = ts.do(t, http.MethodPost, "/api/collateral/deposit", "alice", map[string]string{"amount": "1"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = ts.do(t, http.MethodGet, "/api/assets/weth/usd?amount=15", "", nil)
	require.Equal(t, http.StatusOK, status)
	var usd struct {
		Usd string `json:"usd"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &usd))
	assert.Equal(t, "30000", usd.Usd)

	status, resp = ts.do(t, http.MethodGet, "/api/assets/weth/amount?usd=100", "", nil)
	require.Equal(t, http.StatusOK, status)
	var tokenAmount struct {
		Amount string `json:"amount"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &tokenAmount))
	assert.Equal(t, "0.05", tokenAmount.Amount)

	status, resp = ts.do(t, http.MethodGet, "/api/events?user=alice", "", nil)
	require.Equal(t, http.StatusOK, status)
	var events []struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}
	require.Nil(t, json.Unmarshal(resp.Data, &events))
	require.Len(t, events, 1)
	assert.Equal(t, core.EventCollateralDeposited, events[0].Name)
	assert.Equal(t, "10", events[0].Amount)

	status, _ = ts.do(t, http.MethodGet, "/api/assets", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRestAPIPrices(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"feed_id": "eth-usd", "price": "1800"}

	status, _ := ts.do(t, http.MethodPost, "/api/prices", "alice", body)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = ts.do(t, http.MethodPost, "/api/prices", "admin", body)
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodPost, "/api/prices", "admin", map[string]string{"feed_id": "btc-usd", "price": "1"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(t, http.MethodPost, "/api/prices", "admin", map[string]string{"feed_id": "eth-usd", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, status)
}
