package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pedidos/internal/httpx"
	"pedidos/internal/metrics"
	"pedidos/internal/mw"
)

type RouterDeps struct {
	Auth      Authenticator
	Catalog   Catalog
	Orders    OrderManager
	Metrics   *metrics.Metrics
	JWTSecret string
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.RequestMetrics(d.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	// Public routes
	r.Post("/usuario", RegisterHandler(d.Auth))
	r.Post("/login", LoginHandler(d.Auth, d.JWTSecret))
	r.Get("/produto", ListProductsHandler(d.Catalog))
	r.Get("/produto/{id}", GetProductHandler(d.Catalog))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(d.JWTSecret))

		r.Get("/perfil", ProfileHandler(d.Auth))

		r.Post("/pedidos", CreateOrderHandler(d.Orders))
		r.Get("/pedidos/{id}", ListOwnerOrdersHandler(d.Orders))
		r.Get("/pedidos/{id}/detalhe", GetOrderHandler(d.Orders))

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)

			r.Get("/pedidos", ListOrdersHandler(d.Orders))
			r.Patch("/pedidos/{id}", UpdateStatusHandler(d.Orders))
			r.Post("/produto", CreateProductHandler(d.Catalog))
			r.Put("/produto/{id}", UpdateProductHandler(d.Catalog))
		})
	})

	return r
}
