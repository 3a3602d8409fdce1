package oracle

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dsc/core"
	"dsc/pkg/number"
	"dsc/store/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	s := NewStatic("eth-usd", number.Decimal("2000.5"))

	round, err := s.LatestPrice(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "eth-usd", round.FeedID)
	assert.Equal(t, "200050000000", round.Answer.String())

	// the returned answer is a copy
	round.Answer.SetInt64(1)
	s.SetAnswer(big.NewInt(-5))

	round, err = s.LatestPrice(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "-5", round.Answer.String())
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	prices := price.NewMemory()
	f := NewFeed("eth-usd", prices)

	_, err := f.LatestPrice(ctx)
	assert.True(t, errors.Is(err, ErrNoPrice))

	require.Nil(t, prices.Create(ctx, &core.Price{FeedID: "eth-usd", Price: number.Decimal("1800")}))

	round, err := f.LatestPrice(ctx)
	require.Nil(t, err)
	assert.Equal(t, "180000000000", round.Answer.String())
}

func TestPullPriceTicker(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/tickers/eth-usd":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"provider":"exchange","symbol":"ETH","price":"1999.99"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	s := NewTickerService(ts.URL)

	ticker, err := s.PullPriceTicker(context.Background(), "eth-usd", time.Now())
	require.Nil(t, err)
	assert.Equal(t, "exchange", ticker.Provider)
	assert.Equal(t, "1999.99", ticker.Price.String())

	_, err = s.PullPriceTicker(context.Background(), "doge-usd", time.Now())
	assert.NotNil(t, err)
}
