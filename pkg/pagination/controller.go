package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/places-client/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// PageDelay is the wait between two page requests of one query. The service
// rejects a continuation token that is used too soon after it was issued.
const PageDelay = 2000 * time.Millisecond

// Prometheus metrics for paginated queries.
var (
	pagesFetchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_pages_fetched_total",
		Help: "Total pages fetched by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	pageDelaysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_page_delays_total",
		Help: "Total inter-page delays applied by endpoint",
	}, []string{"endpoint"})

	executePages = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "places_execute_pages",
		Help:    "Pages fetched per successful execute call by endpoint",
		Buckets: []float64{1, 2, 3, 5, 10},
	}, []string{"endpoint"})
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	sleep  Sleeper
	logger *zerolog.Logger
}

// WithSleeper replaces the function used to wait PageDelay (for testing).
func WithSleeper(s Sleeper) Option {
	return func(o *options) {
		o.sleep = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// Controller runs the fetch/merge loop of a paginated endpoint.
// A Controller holds no per-query state and may be shared between goroutines.
type Controller[T any] struct {
	endpoint string
	fetcher  Fetcher[T]
	sleep    Sleeper
	logger   zerolog.Logger
}

// NewController creates a controller for one endpoint.
func NewController[T any](endpoint string, fetcher Fetcher[T], opts ...Option) *Controller[T] {
	o := options{sleep: Sleep}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.NewLogger("pagination")
	if o.logger != nil {
		logger = *o.logger
	}

	return &Controller[T]{
		endpoint: endpoint,
		fetcher:  fetcher,
		sleep:    o.sleep,
		logger:   logger.With().Str("endpoint", endpoint).Logger(),
	}
}

// Execute fetches up to maxPages pages for criteria and returns their
// aggregate. Errors wrapping ErrPrecondition are reported before any request
// is made. A fetch error aborts the query; pages merged so far are dropped.
// Reaching maxPages while more pages exist is not an error: the result is
// marked Truncated.
func (c *Controller[T]) Execute(ctx context.Context, criteria Criteria, maxPages int) (*Result[T], error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("%w: max pages must be >= 1 (got %d)", ErrPrecondition, maxPages)
	}
	if criteria == nil {
		return nil, fmt.Errorf("%w: criteria is required", ErrPrecondition)
	}
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	start := time.Now()
	acc := NewAccumulator[T]()
	current := criteria
	pageCount := 0

	for pageCount < maxPages {
		page, err := c.fetcher.FetchPage(ctx, current.Params())
		if err != nil {
			pagesFetchedTotal.WithLabelValues(c.endpoint, "error").Inc()
			// The transport logs the failure itself.
			c.logger.Debug().
				Err(err).
				Int("page", acc.Pages()+1).
				Msg("Query aborted")
			return nil, fmt.Errorf("fetch page %d: %w", acc.Pages()+1, err)
		}
		if page == nil {
			page = &Page[T]{}
		}
		pagesFetchedTotal.WithLabelValues(c.endpoint, "ok").Inc()

		acc.Merge(page)

		c.logger.Debug().
			Int("page", acc.Pages()).
			Int("items", len(page.Items)).
			Str("status", page.Status).
			Bool("has_next", page.NextPageToken != "").
			Msg("Page merged")

		if page.NextPageToken == "" {
			break
		}

		current = current.WithPageToken(page.NextPageToken)
		pageCount++

		if pageCount < maxPages {
			pageDelaysTotal.WithLabelValues(c.endpoint).Inc()
			if err := c.sleep(ctx, PageDelay); err != nil {
				c.logger.Debug().
					Int("pages", acc.Pages()).
					Msg("Query abandoned during page delay")
				return nil, fmt.Errorf("wait for page %d: %w", acc.Pages()+1, err)
			}
		} else {
			acc.truncate(page.NextPageToken)
		}
	}

	result := acc.Result()
	executePages.WithLabelValues(c.endpoint).Observe(float64(result.Pages))

	c.logger.Info().
		Int("pages", result.Pages).
		Int("items", len(result.Items)).
		Str("status", result.Status).
		Bool("truncated", result.Truncated).
		Dur("duration", time.Since(start)).
		Msg("Query complete")

	return result, nil
}
