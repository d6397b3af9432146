package routes

import (
	"net/http"
)

// ContactDeps contains dependencies for the contact routes
type ContactDeps struct {
	// Relay answers every method on the contact path and rejects non-POST itself
	Relay http.Handler

	// PublicDir holds animation assets served under /lottie/
	PublicDir string
}

// OpsDeps contains dependencies for operational endpoints
type OpsDeps struct {
	Live    http.HandlerFunc
	Ready   http.HandlerFunc
	Metrics http.Handler // optional
}
