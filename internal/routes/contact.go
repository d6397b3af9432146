package routes

import (
	"path/filepath"

	"github.com/dukerupert/folio/internal/form"
	"github.com/dukerupert/folio/internal/middleware"
	"github.com/dukerupert/folio/internal/router"
)

// RegisterContactRoutes registers the mail relay and the static assets the
// contact section loads.
func RegisterContactRoutes(r *router.Router, deps ContactDeps) {
	// Relay gets a tighter body limit and enough time for one SMTP round trip
	r.Any(form.DefaultEndpoint, deps.Relay,
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.RelayTimeout),
	)

	if deps.PublicDir != "" {
		r.Static("/lottie/", filepath.Join(deps.PublicDir, "lottie"))
	}
}
