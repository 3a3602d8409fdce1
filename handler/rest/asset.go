package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func assetsHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)

		assets := make([]*views.Asset, 0)
		for _, assetID := range engine.CollateralTokens() {
			asset, _ := engine.CollateralAsset(assetID)

			round, err := asset.Feed.LatestPrice(ctx)
			if err != nil {
				log.WithError(err).Debugln("LatestPrice", assetID)
				round = nil
			}

			custody := number.FromUnits(asset.Token.BalanceOf(ctx, engine.Self()))
			assets = append(assets, views.AssetView(asset, round, custody))
		}

		render.JSON(w, assets)
	}
}

func usdValueHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("amount", params.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		assetID := chi.URLParam(r, "asset")
		usd, err := engine.UsdValue(r.Context(), assetID, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id": assetID,
			"amount":   params.Amount,
			"usd":      number.FromUnits(usd),
		})
	}
}

func tokenAmountHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Usd decimal.Decimal `json:"usd"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		usd, err := toUnits("usd", params.Usd)
		if err != nil {
			render.Error(w, err)
			return
		}

		assetID := chi.URLParam(r, "asset")
		amount, err := engine.TokenAmountFromUsd(r.Context(), assetID, usd)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id": assetID,
			"usd":      params.Usd,
			"amount":   number.FromUnits(amount),
		})
	}
}
