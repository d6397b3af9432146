package routes

import (
	"github.com/dukerupert/folio/internal/handler"
	"github.com/dukerupert/folio/internal/router"
)

// RegisterOpsRoutes registers health and metrics endpoints, plus the JSON
// 404 for anything unrouted.
// Metrics should be firewalled in production.
func RegisterOpsRoutes(r *router.Router, deps OpsDeps) {
	r.Get("/live", deps.Live)
	r.Get("/ready", deps.Ready)

	if deps.Metrics != nil {
		r.Get("/metrics", deps.Metrics.ServeHTTP)
	}

	r.NotFound(handler.NotFoundResponse)
}
