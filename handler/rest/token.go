package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

// approveHandler let the caller allow spender to move its tokens, the engine
// needs it before deposits, burns and liquidations
func approveHandler(cfg *core.Config, engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Spender string          `json:"spender"`
			Amount  decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		token, ok := tokenOf(cfg, engine, chi.URLParam(r, "asset"))
		if !ok {
			render.Error(w, core.ErrNotAllowedToken)
			return
		}

		amount, err := toUnits("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		spender := body.Spender
		if spender == "" {
			spender = engine.Self()
		}

		if err := token.Approve(r.Context(), accountFrom(r), spender, amount); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
