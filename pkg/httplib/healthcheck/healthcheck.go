package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// DefaultTimeout bounds a single round of checks.
const DefaultTimeout = 2 * time.Second

// Checker reports an error while a dependency is not ready.
type Checker func(ctx context.Context) error

// HealthCheck is the health check handler. With no checkers it always
// answers ok.
type HealthCheck struct {
	checks  map[string]Checker
	timeout time.Duration
}

// New creates a HealthCheck running checks by name.
func New(checks map[string]Checker) HealthCheck {
	return HealthCheck{checks: checks, timeout: DefaultTimeout}
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP serve http request for health check
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	failures := hc.Run(r.Context())
	if len(failures) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable", "failures": failures})
}

// Run executes every check and returns the failing ones by name.
func (hc HealthCheck) Run(ctx context.Context) map[string]string {
	timeout := hc.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failures := make(map[string]string)
	for _, name := range names {
		if err := hc.checks[name](ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	return failures
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == "/health"
}
