package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dihow/CircuitBoardWarehouse/internal/logger"
)

// Handlers carries every resource handler the router mounts.
type Handlers struct {
	Components *componentHandler
	Pcbs       *pcbHandler
	Clients    *clientHandler
	Orders     *orderHandler
	Movements  *movementHandler
	Auth       *authHandler
	Events     *eventHandler
}

func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", healthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/register", h.Auth.Register)

		r.Get("/events", h.Events.Stream)
		r.Get("/movements", h.Movements.List)

		r.Route("/components", func(r chi.Router) {
			r.Get("/", h.Components.List)
			r.Post("/", h.Components.Create)
			r.Route("/{componentID}", func(r chi.Router) {
				r.Get("/", h.Components.Get)
				r.Put("/", h.Components.Update)
				r.Delete("/", h.Components.Delete)
				r.Put("/stock", h.Components.SetStock)
				r.Get("/specifications", h.Components.Specifications)
			})
		})

		r.Route("/pcbs", func(r chi.Router) {
			r.Get("/", h.Pcbs.List)
			r.Post("/", h.Pcbs.Create)
			r.Route("/{pcbID}", func(r chi.Router) {
				r.Get("/", h.Pcbs.Get)
				r.Put("/", h.Pcbs.Update)
				r.Delete("/", h.Pcbs.Delete)
				r.Get("/components", h.Pcbs.Lines)
				r.Put("/components", h.Pcbs.AssignComponent)
				r.Delete("/components/{componentID}", h.Pcbs.RemoveComponent)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.Clients.List)
			r.Post("/", h.Clients.Create)
			r.Route("/{clientID}", func(r chi.Router) {
				r.Get("/", h.Clients.Get)
				r.Put("/", h.Clients.Update)
				r.Delete("/", h.Clients.Delete)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.List)
			r.Post("/", h.Orders.Create)
			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", h.Orders.Get)
				r.Put("/", h.Orders.Update)
				r.Delete("/", h.Orders.Delete)
				r.Put("/status", h.Orders.SetStatus)
				r.Get("/items", h.Orders.Items)
				r.Put("/items", h.Orders.SaveItem)
			})
			r.Delete("/items/{itemID}", h.Orders.RemoveItem)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("SERVING")); err != nil {
		logger.Error(r.Context(), "health check", logger.ErrorF(err))
	}
}
