package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/shopspring/decimal"
)

func depositHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AssetID string          `json:"asset_id" valid:"required"`
			Amount  decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.DepositCollateral(r.Context(), accountFrom(r), body.AssetID, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func redeemHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AssetID string          `json:"asset_id" valid:"required"`
			Amount  decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.RedeemCollateral(r.Context(), accountFrom(r), body.AssetID, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

type collateralAndDsc struct {
	AssetID    string          `json:"asset_id" valid:"required"`
	Collateral decimal.Decimal `json:"collateral"`
	Dsc        decimal.Decimal `json:"dsc"`
}

func depositAndMintHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body collateralAndDsc
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		collateral, err := toUnits("collateral", body.Collateral)
		if err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("dsc", body.Dsc)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.DepositCollateralAndMintDsc(r.Context(), accountFrom(r), body.AssetID, collateral, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func redeemForDscHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body collateralAndDsc
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		collateral, err := toUnits("collateral", body.Collateral)
		if err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("dsc", body.Dsc)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.RedeemCollateralForDsc(r.Context(), accountFrom(r), body.AssetID, collateral, amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
