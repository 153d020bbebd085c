package pagination

import (
	"context"
	"errors"
)

// ErrPrecondition is returned when a query is executed with criteria that can
// never produce a valid request. It is a programming error and must not be
// retried.
var ErrPrecondition = errors.New("precondition failed")

// Param is a single query parameter in wire form.
type Param struct {
	Name  string
	Value string
}

// Criteria is the immutable description of one logical query.
type Criteria interface {
	// Validate reports a missing or out-of-range criterion.
	Validate() error

	// Params returns the wire parameters for the next page, in a stable order.
	Params() []Param

	// WithPageToken returns a copy of the criteria bound to a continuation token.
	WithPageToken(token string) Criteria
}

// Page is one decoded response of a paginated endpoint.
type Page[T any] struct {
	Items            []T
	Status           string
	ErrorMessage     string
	InfoMessages     []string
	HTMLAttributions []string

	// NextPageToken is empty when there are no further pages.
	NextPageToken string
}

// Fetcher fetches one page for the given parameters.
// Implementations must be safe for concurrent use.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, params []Param) (*Page[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, params []Param) (*Page[T], error)

// FetchPage calls f(ctx, params).
func (f FetcherFunc[T]) FetchPage(ctx context.Context, params []Param) (*Page[T], error) {
	return f(ctx, params)
}
