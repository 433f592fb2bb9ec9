package httpx

import (
	"context"
	"net/http"
	"time"
)

const healthTimeout = 2 * time.Second

// Component states reported by the health endpoint.
const (
	StateOK          = "ok"
	StateDisabled    = "disabled"
	StateUnreachable = "unreachable"
)

// HealthChecker is anything with a Ping; database.Database, cache.RedisClient
// and events.EventBus all qualify.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ItemCounter reports the size of the catalog.
type ItemCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthChecks lists the dependencies checked by HealthHandler. Only Database
// is required: a nil Redis or EventBus is reported as "disabled" and a nil
// Catalog leaves the items field out.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
	Catalog  ItemCounter
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
	Items    *int   `json:"items,omitempty"`
}

// HealthHandler checks every configured dependency and answers 503 with
// status "degraded" when any of them fails. An empty catalog is healthy.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{
			Database: checkState(ctx, checks.Database),
			Redis:    checkState(ctx, checks.Redis),
			EventBus: checkState(ctx, checks.EventBus),
		}
		if checks.Catalog != nil && resp.Database == StateOK {
			if n, err := checks.Catalog.Count(ctx); err == nil {
				resp.Items = &n
			}
		}

		status := http.StatusOK
		resp.Status = StateOK
		for _, s := range []string{resp.Database, resp.Redis, resp.EventBus} {
			if s == StateUnreachable {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		JSON(w, status, resp)
	}
}

func checkState(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return StateDisabled
	}
	if err := c.Ping(ctx); err != nil {
		return StateUnreachable
	}
	return StateOK
}
