package search

import (
	"context"
	"fmt"

	"github.com/Sternrassler/places-client/pkg/logging"
	"github.com/Sternrassler/places-client/pkg/pagination"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/rs/zerolog"
)

// Result is the aggregate of a search.
type Result = pagination.Result[places.Place]

// Cursor walks the places of a Result.
type Cursor = pagination.Cursor[places.Place]

// Service creates queries against one Transport. It is safe for concurrent use.
type Service struct {
	transport Transport
	text      *pagination.Controller[places.Place]
	nearby    *pagination.Controller[places.Place]
	find      *pagination.Controller[places.Place]
	batch     BatchConfig
	logger    zerolog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	pagination []pagination.Option
	batch      BatchConfig
	logger     *zerolog.Logger
}

// WithPaginationOptions passes options to every pagination controller.
func WithPaginationOptions(opts ...pagination.Option) Option {
	return func(o *serviceOptions) {
		o.pagination = append(o.pagination, opts...)
	}
}

// WithBatchConfig sets the worker pool used by DetailsForPlaces.
func WithBatchConfig(cfg BatchConfig) Option {
	return func(o *serviceOptions) {
		o.batch = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = &logger
	}
}

// New creates a Service. t is usually a *client.Client.
func New(t Transport, opts ...Option) *Service {
	o := serviceOptions{batch: DefaultBatchConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := logging.NewLogger("search")
	if o.logger != nil {
		logger = *o.logger
	}

	pagOpts := append([]pagination.Option{pagination.WithLogger(logger)}, o.pagination...)
	controller := func(endpoint string) *pagination.Controller[places.Place] {
		return pagination.NewController[places.Place](endpoint, &pageFetcher{transport: t, endpoint: endpoint}, pagOpts...)
	}

	return &Service{
		transport: t,
		text:      controller(EndpointTextSearch),
		nearby:    controller(EndpointNearbySearch),
		find:      controller(EndpointFindPlace),
		batch:     o.batch.withDefaults(),
		logger:    logger,
	}
}

// TextSearch starts a text search query.
func (s *Service) TextSearch() *TextSearch {
	return &TextSearch{svc: s}
}

// NearbySearch starts a nearby search query.
func (s *Service) NearbySearch() *NearbySearch {
	return &NearbySearch{svc: s}
}

// FindPlace starts a find-place query.
func (s *Service) FindPlace() *FindPlace {
	return &FindPlace{svc: s, criteria: FindPlaceCriteria{InputType: places.InputTypeText}}
}

// PlaceDetails starts a details query.
func (s *Service) PlaceDetails() *PlaceDetails {
	return &PlaceDetails{svc: s}
}

// PlacePhoto starts a photo query.
func (s *Service) PlacePhoto() *PlacePhoto {
	return &PlacePhoto{svc: s}
}

// paged holds the last successful result of a paginated query.
type paged struct {
	result *Result
}

func (p *paged) run(ctx context.Context, c *pagination.Controller[places.Place], criteria pagination.Criteria, maxPages int) (*Result, error) {
	result, err := c.Execute(ctx, criteria, maxPages)
	if err != nil {
		return nil, err
	}
	p.result = result
	return result.Clone(), nil
}

// Result returns a copy of the last successful result, or nil before the
// first successful Execute.
func (p *paged) Result() *Result {
	return p.result.Clone()
}

// Iter returns a cursor over the last successful result. Before the first
// successful Execute the cursor is empty.
func (p *paged) Iter() *Cursor {
	return pagination.NewCursor(p.result)
}

// At returns the place at index i of the last successful result.
func (p *paged) At(i int) (places.Place, bool) {
	return p.result.At(i)
}

// Len returns the number of places in the last successful result.
func (p *paged) Len() int {
	return p.result.Len()
}

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{pagination.ErrPrecondition}, args...)...)
}
