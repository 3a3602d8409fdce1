package rest

import (
	"net/http"

	"dsc/core"
	"dsc/handler/param"
	"dsc/handler/render"
	"dsc/handler/views"
)

// response committed engine events, filtered by user when given
func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Offset int64  `json:"offset"`
			Limit  int    `json:"limit" valid:"range(0|500)"`
			User   string `json:"user"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		var (
			list []*core.Event
			err  error
		)

		if params.User != "" {
			list, err = events.ListByUser(ctx, params.User, params.Offset, params.Limit)
		} else {
			list, err = events.List(ctx, params.Offset, params.Limit)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.EventViews(list))
	}
}
