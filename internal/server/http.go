package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/internal/config"
	"github.com/gokatarajesh/trivia-catalog/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-catalog/pkg/http/errors"
)

// PingFunc checks a single dependency.
type PingFunc func(ctx context.Context) error

// Dependency is a named check run by /v1/ping.
type Dependency struct {
	Name string
	Ping PingFunc
}

// Dependencies groups what the HTTP server needs beyond config.
type Dependencies struct {
	Catalog *CatalogHandlers
	Checks  []Dependency
	// Gatherer serves /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

// NewHTTPServer wires the catalog routes plus health, ping and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Dependencies) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if deps.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	} else {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pingDependencies(ctx, deps.Checks); err != nil {
			logger := logging.FromContext(ctx)
			logger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if deps.Catalog != nil {
		deps.Catalog.Register(mux)
	}

	var handler http.Handler = withJSONFallback(mux)
	handler = corsMiddleware(cfg.CORS)(handler)
	handler = logging.Middleware(logger)(handler)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func pingDependencies(ctx context.Context, checks []Dependency) error {
	for _, check := range checks {
		if err := check.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", check.Name, err)
		}
	}
	return nil
}

var routedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// withJSONFallback answers unrouted requests with the JSON error body instead
// of ServeMux's plain-text 404 and 405.
func withJSONFallback(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		var allowed []string
		for _, method := range routedMethods {
			alt := r.Clone(r.Context())
			alt.Method = method
			if _, pattern := mux.Handler(alt); pattern != "" {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			httperrors.RespondError(w, http.StatusMethodNotAllowed, httperrors.ErrCodeMethodNotAllowed, "method not allowed")
			return
		}
		httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "resource not found")
	})
}
