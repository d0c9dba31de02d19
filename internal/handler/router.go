package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	monitorHandler "github.com/servicezone/concierge/internal/handler/monitor"
	sessionHandler "github.com/servicezone/concierge/internal/handler/session"
	webhookHandler "github.com/servicezone/concierge/internal/handler/webhook"
	middlewarePkg "github.com/servicezone/concierge/internal/middleware"
	convoservice "github.com/servicezone/concierge/internal/service/convo"
	monitorservice "github.com/servicezone/concierge/internal/service/monitor"
	"github.com/servicezone/concierge/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(controller *convoservice.Controller, store *convoservice.Store, hub *monitorservice.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	webhookHandler.New(controller).RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		sessionHandler.New(store).RegisterRoutes(api)
		if hub != nil {
			monitorHandler.New(hub).RegisterRoutes(api)
		}
	})

	return r
}
