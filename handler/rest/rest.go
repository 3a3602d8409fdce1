package rest

import (
	"errors"
	"net/http"
	"strings"

	"dsc/core"
	"dsc/handler/auth"
	"dsc/handler/render"
	"dsc/handler/request"
	"dsc/pkg/number"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(cfg *core.Config, engine core.IEngine, events core.EventStore, prices core.PriceStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/assets", assetsHandler(engine))
	router.Get("/assets/{asset}/usd", usdValueHandler(engine))
	router.Get("/assets/{asset}/amount", tokenAmountHandler(engine))
	router.Get("/accounts/{user}", accountHandler(engine))
	router.Get("/events", eventsHandler(events))

	router.Group(func(r chi.Router) {
		r.Use(auth.HandleAuthenticated)

		r.Post("/collateral/deposit", depositHandler(engine))
		r.Post("/collateral/redeem", redeemHandler(engine))
		r.Post("/dsc/mint", mintHandler(engine))
		r.Post("/dsc/burn", burnHandler(engine))
		r.Post("/deposit-and-mint", depositAndMintHandler(engine))
		r.Post("/redeem-for-dsc", redeemForDscHandler(engine))
		r.Post("/liquidate", liquidateHandler(engine))
		r.Post("/tokens/{asset}/approve", approveHandler(cfg, engine))

		r.With(auth.HandleAdmin(cfg)).Post("/prices", priceHandler(cfg, prices))
	})

	return router
}

func accountFrom(r *http.Request) string {
	account, _ := request.NewContext(r.Context()).GetAccount()
	return account
}

// toUnits convert a human amount into 18-decimal units
func toUnits(field string, d decimal.Decimal) (*uint256.Int, error) {
	v, err := number.ToUnits(d)
	if err != nil {
		return nil, twirp.InvalidArgumentError(field, err.Error())
	}

	return v, nil
}

// tokenOf ledger of a collateral asset, or the synthetic ledger for the dsc symbol
func tokenOf(cfg *core.Config, engine core.IEngine, assetID string) (core.Token, bool) {
	if strings.EqualFold(assetID, cfg.App.DscSymbol) {
		return engine.Dsc(), true
	}

	asset, ok := engine.CollateralAsset(assetID)
	if !ok {
		return nil, false
	}

	return asset.Token, true
}
