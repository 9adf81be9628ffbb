package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"posflow/internal/api/handlers"
)

type Dependencies struct {
	WebhookHandler *handlers.WebhookHandler
	HealthHandler  *handlers.HealthHandler
	MetricsHandler *handlers.MetricsHandler
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	// Inbound provider webhooks
	router.POST("/webhooks/:provider", deps.WebhookHandler.Receive)

	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return router
}

func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		handler(w, r)
	}
}
