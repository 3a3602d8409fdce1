package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/render"
	"dsc/handler/views"
	"dsc/pkg/number"

	"github.com/go-chi/chi"
)

func accountHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := chi.URLParam(r, "user")

		info, err := engine.AccountInformation(ctx, user)
		if err != nil {
			render.Error(w, err)
			return
		}

		hf, err := engine.CalculateHealthFactor(info.DscMinted, info.CollateralValueUSD)
		if err != nil {
			render.Error(w, err)
			return
		}

		collaterals := make([]*views.Collateral, 0)
		for _, assetID := range engine.CollateralTokens() {
			asset, _ := engine.CollateralAsset(assetID)

			deposited, err := engine.CollateralBalance(ctx, user, assetID)
			if err != nil {
				render.Error(w, err)
				return
			}

			collaterals = append(collaterals, &views.Collateral{
				AssetID:   asset.AssetID,
				Symbol:    asset.Symbol,
				Deposited: number.FromUnits(deposited),
				Balance:   number.FromUnits(asset.Token.BalanceOf(ctx, user)),
			})
		}

		dscBalance := engine.Dsc().BalanceOf(ctx, user)
		render.JSON(w, views.AccountView(user, info, hf, dscBalance, collaterals))
	}
}
