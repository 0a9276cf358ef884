package http

import (
	"net/http"

	"github.com/atinyakov/ContactKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the ContactKeeper API.
//
// Routes:
//
//	GET    /api/accounts                → accountHandler.List
//	POST   /api/accounts                → accountHandler.Add
//	DELETE /api/accounts/{type}/{name}  → accountHandler.Remove
//	GET    /api/accounts/default        → defaultHandler.Get
//	PUT    /api/accounts/default        → defaultHandler.Set
//	DELETE /api/accounts/default        → defaultHandler.Clear
//	GET    /metrics                     → metrics (when not nil)
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") rejects non-JSON bodies
//  2. WithRequestLogging(logger) assigns request ids and logs requests
func NewRouter(
	accountHandler *AccountHandler,
	defaultHandler *DefaultAccountHandler,
	metrics http.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api/accounts", func(r chi.Router) {
		r.Get("/", accountHandler.List)
		r.Post("/", accountHandler.Add)

		r.Get("/default", defaultHandler.Get)
		r.Put("/default", defaultHandler.Set)
		r.Delete("/default", defaultHandler.Clear)

		r.Delete("/{type}/{name}", accountHandler.Remove)
	})

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}
