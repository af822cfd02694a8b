package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/roundstock/roundstock/internal/distribution"
	"github.com/roundstock/roundstock/internal/inventory"
	"github.com/roundstock/roundstock/internal/masterdata/customers"
	"github.com/roundstock/roundstock/internal/masterdata/products"
	"github.com/roundstock/roundstock/internal/masterdata/shops"
	"github.com/roundstock/roundstock/internal/observability"
	"github.com/roundstock/roundstock/internal/orders"
	"github.com/roundstock/roundstock/internal/receiving"
	"github.com/roundstock/roundstock/internal/reports"
	"github.com/roundstock/roundstock/internal/rounds"
	"github.com/roundstock/roundstock/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	ProductsHandler     *products.Handler
	ShopsHandler        *shops.Handler
	CustomersHandler    *customers.Handler
	RoundsHandler       *rounds.Handler
	ReceivingHandler    *receiving.Handler
	InventoryHandler    *inventory.Handler
	DistributionHandler *distribution.Handler
	OrdersHandler       *orders.Handler
	ReportsHandler      *reports.Handler
	JobsHandler         *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with Roundstock defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if params.ProductsHandler != nil {
			params.ProductsHandler.MountRoutes(api)
		}
		if params.ShopsHandler != nil {
			params.ShopsHandler.MountRoutes(api)
		}
		if params.CustomersHandler != nil {
			params.CustomersHandler.MountRoutes(api)
		}
		if params.RoundsHandler != nil {
			params.RoundsHandler.MountRoutes(api)
		}
		if params.ReceivingHandler != nil {
			params.ReceivingHandler.MountRoutes(api)
		}
		if params.InventoryHandler != nil {
			params.InventoryHandler.MountRoutes(api)
		}
		if params.DistributionHandler != nil {
			params.DistributionHandler.MountRoutes(api)
		}
		if params.OrdersHandler != nil {
			params.OrdersHandler.MountRoutes(api)
		}
		if params.ReportsHandler != nil {
			params.ReportsHandler.MountRoutes(api)
		}
		if params.JobsHandler != nil {
			params.JobsHandler.MountRoutes(api)
		}
	})

	return r
}
