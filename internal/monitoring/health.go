// internal/monitoring/health.go
package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sort"
	"sync"
	"time"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// CheckFunc reports a dependency problem as an error
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one named check
type CheckResult struct {
	Name   string       `json:"name"`
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
}

// SystemHealth is the body of the health endpoint
type SystemHealth struct {
	Status     HealthStatus  `json:"status"`
	Timestamp  time.Time     `json:"timestamp"`
	Version    string        `json:"version,omitempty"`
	Uptime     string        `json:"uptime"`
	Goroutines int           `json:"goroutines"`
	Sources    []string      `json:"sources,omitempty"`
	Checks     []CheckResult `json:"checks,omitempty"`
}

// HealthManager runs registered checks on demand
type HealthManager struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	version string
	sources []string
	started time.Time
	timeout time.Duration
}

// NewHealthManager creates a health manager reporting version and the supported sources
func NewHealthManager(version string, sources []string) *HealthManager {
	return &HealthManager{
		checks:  make(map[string]CheckFunc),
		version: version,
		sources: sources,
		started: time.Now(),
		timeout: 5 * time.Second,
	}
}

// RegisterCheck adds or replaces a named check
func (hm *HealthManager) RegisterCheck(name string, check CheckFunc) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.checks[name] = check
}

// GetHealth runs every check; any failure makes the system unhealthy
func (hm *HealthManager) GetHealth(ctx context.Context) SystemHealth {
	hm.mu.RLock()
	names := make([]string, 0, len(hm.checks))
	for name := range hm.checks {
		names = append(names, name)
	}
	checks := make(map[string]CheckFunc, len(hm.checks))
	for name, check := range hm.checks {
		checks[name] = check
	}
	hm.mu.RUnlock()
	sort.Strings(names)

	health := SystemHealth{
		Status:     HealthStatusHealthy,
		Timestamp:  time.Now().UTC(),
		Version:    hm.version,
		Uptime:     time.Since(hm.started).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		Sources:    hm.sources,
	}

	for _, name := range names {
		checkCtx, cancel := context.WithTimeout(ctx, hm.timeout)
		err := checks[name](checkCtx)
		cancel()

		result := CheckResult{Name: name, Status: HealthStatusHealthy}
		if err != nil {
			result.Status = HealthStatusUnhealthy
			result.Error = err.Error()
			health.Status = HealthStatusUnhealthy
		}
		health.Checks = append(health.Checks, result)
	}

	return health
}

// HealthHandler serves GetHealth as JSON, with 503 when unhealthy
func (hm *HealthManager) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := hm.GetHealth(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if health.Status == HealthStatusUnhealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		json.NewEncoder(w).Encode(health)
	}
}
