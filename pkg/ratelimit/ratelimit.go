// Package ratelimit enforces per-endpoint request ceilings keyed by client IP.
//
// Each endpoint gets its own httprate limiter, so the counters for listing,
// fetching and searching are independent. Counters live in process memory and
// reset on restart. The key is r.RemoteAddr: the TCP peer, or the forwarded
// client address when the router trusts proxy headers.
package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/ghuser/dune-crafting-api/pkg/config"
	"github.com/ghuser/dune-crafting-api/pkg/httpx"
	"github.com/ghuser/dune-crafting-api/pkg/logger"
)

const meterName = "github.com/ghuser/dune-crafting-api/pkg/ratelimit"

// Endpoint names, used as the metric attribute and in logs.
const (
	EndpointListItems   = "list_items"
	EndpointGetItem     = "get_item"
	EndpointSearchItems = "search_items"
)

// Rule is a request ceiling for one endpoint.
type Rule struct {
	Endpoint string
	Limit    int
	Window   time.Duration
}

// String renders the rule the way it appears in 429 bodies, e.g.
// "20 per 1 minute".
func (r Rule) String() string {
	return fmt.Sprintf("%d per %s", r.Limit, describeWindow(r.Window))
}

// Policy holds the rule for every rate-limited endpoint.
type Policy struct {
	ListItems   Rule
	GetItem     Rule
	SearchItems Rule

	log      logger.Logger
	rejected metric.Int64Counter
}

// NewPolicy builds the policy from configuration. Rejections are counted on
// the http.server.rate_limited counter of the global meter provider.
func NewPolicy(cfg *config.Config, log logger.Logger) *Policy {
	rejected, err := otel.Meter(meterName).Int64Counter(
		"http.server.rate_limited",
		metric.WithDescription("Requests rejected by a per-endpoint rate limit."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Warn("rate limit counter unavailable", "error", err)
		rejected = noop.Int64Counter{}
	}

	return &Policy{
		ListItems:   Rule{Endpoint: EndpointListItems, Limit: cfg.RateLimitListItems, Window: cfg.RateLimitWindow},
		GetItem:     Rule{Endpoint: EndpointGetItem, Limit: cfg.RateLimitGetItem, Window: cfg.RateLimitWindow},
		SearchItems: Rule{Endpoint: EndpointSearchItems, Limit: cfg.RateLimitSearchItems, Window: cfg.RateLimitWindow},
		log:         log,
		rejected:    rejected,
	}
}

// Middleware returns a limiter for rule. Every call creates a fresh counter,
// so build it once per route.
func (p *Policy) Middleware(rule Rule) func(http.Handler) http.Handler {
	message := "Rate limit exceeded: " + rule.String()
	attrs := metric.WithAttributes(attribute.String("endpoint", rule.Endpoint))

	return httprate.Limit(
		rule.Limit,
		rule.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			p.rejected.Add(r.Context(), 1, attrs)
			p.log.WarnContext(r.Context(), "rate limit exceeded",
				"endpoint", rule.Endpoint,
				"remote_addr", r.RemoteAddr,
			)
			httpx.JSONError(w, http.StatusTooManyRequests, message)
		}),
	)
}

// describeWindow renders d in the largest whole unit: "1 minute", "30 seconds".
func describeWindow(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	case d >= time.Second && d%time.Second == 0:
		return plural(int(d/time.Second), "second")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
