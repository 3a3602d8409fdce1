package rest

import (
	"errors"
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
	"github.com/twitchtv/twirp"
)

// priceHandler record a manual price round for a configured feed
func priceHandler(cfg *core.Config, prices core.PriceStore) http.HandlerFunc {
	feeds := make([]string, 0, len(cfg.Collaterals))
	for _, c := range cfg.Collaterals {
		feeds = append(feeds, c.FeedID)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FeedID string          `json:"feed_id" valid:"required"`
			Price  decimal.Decimal `json:"price"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		if !govalidator.IsIn(body.FeedID, feeds...) {
			render.NotFoundRequest(w, errors.New("feed not found"))
			return
		}

		if !body.Price.IsPositive() {
			render.Error(w, twirp.InvalidArgumentError("price", "must be positive"))
			return
		}

		price := &core.Price{
			FeedID:   body.FeedID,
			Price:    body.Price.Truncate(core.FeedDecimals),
			Provider: accountFrom(r),
		}

		if err := prices.Create(r.Context(), price); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DefaultSuccess)
	}
}
