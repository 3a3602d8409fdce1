package handler

import (
	"net/http"

	"dsc/core"
	"dsc/handler/auth"
	"dsc/handler/render"
	"dsc/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg     *core.Config
	engine  core.IEngine
	session core.Session
	events  core.EventStore
	prices  core.PriceStore
}

// New new server function
func New(
	cfg *core.Config,
	engine core.IEngine,
	session core.Session,
	events core.EventStore,
	prices core.PriceStore,
) Server {
	return Server{
		cfg:     cfg,
		engine:  engine,
		session: session,
		events:  events,
		prices:  prices,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication(s.session))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg, s.engine, s.events, s.prices))
	return r
}
