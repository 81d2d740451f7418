package api

import (
	"net/http"

	"aguaruta-service/internal/adapters/photos"
	"aguaruta-service/internal/api/handlers"
	"aguaruta-service/internal/ports"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// Cache and signer may be nil; the affected endpoints degrade gracefully.
func NewRouter(
	deliveries ports.DeliveryRepository,
	route ports.RouteRepository,
	cache ports.SummaryCache,
	signer *photos.Signer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	deliveryHandler := &handlers.DeliveryHandler{Repo: deliveries, Cache: cache}
	routeHandler := &handlers.RouteHandler{Repo: route}
	photoHandler := &handlers.PhotoHandler{Signer: signer}

	r.Get("/health", handlers.Health)
	r.Get("/estados", deliveryHandler.Statuses)

	r.Get("/entregas", deliveryHandler.List)
	r.Post("/entregas", deliveryHandler.Create)
	r.Get("/entregas/no-entregadas", deliveryHandler.NotDelivered)
	r.Get("/entregas/resumen", deliveryHandler.Summary)
	r.Get("/entregas/export", deliveryHandler.Export)

	r.Get("/rutas-activas", routeHandler.List)
	r.Post("/rutas-activas", routeHandler.Create)
	r.Put("/rutas-activas/{id}", routeHandler.Update)
	r.Post("/rutas-activas/auto", routeHandler.AutoAssign)
	r.Post("/admin/importar-ruta-activa", routeHandler.Import)

	r.Get("/cloudinary/sign", photoHandler.Sign)

	return r
}
