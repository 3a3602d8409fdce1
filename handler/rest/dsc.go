package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/shopspring/decimal"
)

type dscAmount struct {
	Amount decimal.Decimal `json:"amount"`
}

func mintHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dscAmount
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.MintDsc(r.Context(), accountFrom(r), amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func burnHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body dscAmount
		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := toUnits("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.BurnDsc(r.Context(), accountFrom(r), amount); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}

func liquidateHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AssetID     string          `json:"asset_id" valid:"required"`
			User        string          `json:"user" valid:"required"`
			DebtToCover decimal.Decimal `json:"debt_to_cover"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		debt, err := toUnits("debt_to_cover", body.DebtToCover)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := engine.Liquidate(r.Context(), accountFrom(r), body.AssetID, body.User, debt); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
