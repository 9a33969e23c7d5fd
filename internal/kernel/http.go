// Package kernel builds the HTTP handler: global middleware stack, API
// routes, operational endpoints and the static frontend fallback.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/dukaan/app/controllers"
	"github.com/shashiranjanraj/dukaan/app/routes"
	"github.com/shashiranjanraj/dukaan/pkg/metrics"
	"github.com/shashiranjanraj/dukaan/pkg/middleware"
	"github.com/shashiranjanraj/dukaan/pkg/reqid"
	"github.com/shashiranjanraj/dukaan/pkg/response"
	"github.com/shashiranjanraj/dukaan/pkg/router"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the dependency-injected handles the kernel wires together.
// They are constructed once at startup and shared read-only afterwards.
type Deps struct {
	Auth      *controllers.AuthController
	Checkout  *controllers.CheckoutController
	Store     Pinger
	StaticDir string
}

// Build assembles the router and returns the root http.Handler.
func Build(d Deps) http.Handler {
	r := NewRouter(d)
	return r.Handler()
}

// NewRouter assembles the router itself; the CLI uses it for route:list.
func NewRouter(d Deps) *router.Router {
	r := router.New()

	// Middleware stack, outermost first:
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery           — catches panics before they kill the goroutine
	//  3. Request ID         — inject unique ID before anything logs
	//  4. Logger             — per-request logger tagged with request_id
	//  5. CORS               — set CORS headers, answer preflight
	//  6. Rate limiter       — reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", healthHandler(d.Store))

	routes.RegisterAPI(r, d.Auth, d.Checkout)

	// Static frontend: explicit login page route plus an index.html
	// fallback for every unmatched GET.
	static := NewStaticHandler(d.StaticDir)
	r.Get("/login.html", "static.login", static.ServeHTTP)
	r.NotFound(static.ServeHTTP)

	return r
}

func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				response.JSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"store":  "unreachable",
				})
				return
			}
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
