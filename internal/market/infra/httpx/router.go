package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
	"github.com/freshly-yours/marketplace/internal/market/infra/httpx/middlewares"
)

// NewRouter assembles the route tree. Auth endpoints and the health probe
// are open; everything else sits behind the bearer-token middleware, with
// role guards on the vendor- and supplier-only groups.
func NewRouter(handler *Handler, auth ports.AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", handler.Health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.With(middlewares.Authenticator(auth)).Get("/me", handler.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticator(auth))

		r.Route("/api/vendor", func(r chi.Router) {
			r.Use(middlewares.RequireRole(entity.RoleVendor))
			r.Get("/products", handler.BrowseProducts)
		})

		r.Route("/api/supplier", func(r chi.Router) {
			r.Use(middlewares.RequireRole(entity.RoleSupplier))
			r.Post("/products", handler.AddProduct)
			r.Get("/products", handler.ListOwnProducts)
			r.Put("/products/{id}", handler.UpdateProduct)
			r.Delete("/products/{id}", handler.RemoveProduct)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.With(middlewares.RequireRole(entity.RoleVendor)).Post("/", handler.PlaceOrder)
			r.With(middlewares.RequireRole(entity.RoleVendor)).Get("/vendor", handler.ListOrders)
			r.With(middlewares.RequireRole(entity.RoleSupplier)).Get("/supplier", handler.ListOrders)
			r.With(middlewares.RequireRole(entity.RoleSupplier)).Put("/{id}/status", handler.UpdateOrderStatus)
			r.Get("/{id}", handler.GetOrder)
		})

		r.Get("/api/ws", handler.AttachChannel)
	})

	return r
}
