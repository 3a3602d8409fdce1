package views

import (
	"time"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/shopspring/decimal"
)

// Event event view
type Event struct {
	ID        int64           `json:"id"`
	TraceID   string          `json:"trace_id"`
	Name      string          `json:"name"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventViews render events, amounts in human units
func EventViews(events []*core.Event) []*Event {
	views := make([]*Event, 0, len(events))
	for _, e := range events {
		views = append(views, &Event{
			ID:        e.ID,
			TraceID:   e.TraceID,
			Name:      e.Name,
			From:      e.From,
			To:        e.To,
			AssetID:   e.AssetID,
			Amount:    e.Amount.Shift(-number.Decimals),
			CreatedAt: e.CreatedAt,
		})
	}

	return views
}
