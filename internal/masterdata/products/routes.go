package products

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/products", h.List)
	r.Post("/products", h.Create)
	r.Post("/products/bulk", h.BulkUpsert)
	r.Get("/products/{code}", h.Show)
	r.Put("/products/{code}", h.Update)
	r.Delete("/products/{code}", h.Delete)
}
