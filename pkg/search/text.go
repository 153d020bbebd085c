package search

import (
	"context"

	"github.com/Sternrassler/places-client/pkg/places"
)

// TextSearch is a text search query builder.
type TextSearch struct {
	paged
	svc      *Service
	criteria TextCriteria
}

// WithQuery sets the free-text query, e.g. "coffee in Zurich".
func (q *TextSearch) WithQuery(query string) *TextSearch {
	q.criteria.Query = query
	return q
}

// WithType restricts results to one place type.
func (q *TextSearch) WithType(t places.PlaceType) *TextSearch {
	q.criteria.Type = t
	return q
}

// WithLocation sets the point to bias results around.
func (q *TextSearch) WithLocation(loc places.Location) *TextSearch {
	q.criteria.Location = &loc
	return q
}

// WithRadius sets the bias radius in meters.
func (q *TextSearch) WithRadius(meters float64) *TextSearch {
	q.criteria.Radius = &meters
	return q
}

// WithLanguage sets the result language.
func (q *TextSearch) WithLanguage(lang places.Language) *TextSearch {
	q.criteria.Language = lang
	return q
}

// WithMinPrice sets the lowest price level (0-4).
func (q *TextSearch) WithMinPrice(level int) *TextSearch {
	q.criteria.MinPrice = &level
	return q
}

// WithMaxPrice sets the highest price level (0-4).
func (q *TextSearch) WithMaxPrice(level int) *TextSearch {
	q.criteria.MaxPrice = &level
	return q
}

// WithOpenNow restricts results to places open at query time.
func (q *TextSearch) WithOpenNow(open bool) *TextSearch {
	q.criteria.OpenNow = &open
	return q
}

// WithRegion sets the two-letter region code used to bias results.
func (q *TextSearch) WithRegion(region string) *TextSearch {
	q.criteria.Region = region
	return q
}

// WithPageToken starts from a continuation token, e.g. the NextPageToken of
// a truncated result.
func (q *TextSearch) WithPageToken(token string) *TextSearch {
	q.criteria.PageToken = token
	return q
}

// Criteria returns a copy of the configured criteria.
func (q *TextSearch) Criteria() TextCriteria {
	return q.criteria.clone()
}

// Clone returns an independent builder with the same criteria and no result.
func (q *TextSearch) Clone() *TextSearch {
	return &TextSearch{svc: q.svc, criteria: q.criteria.clone()}
}

// Execute fetches up to maxPages pages and returns the merged result. The
// result is also kept for Result, Iter and At.
func (q *TextSearch) Execute(ctx context.Context, maxPages int) (*Result, error) {
	return q.run(ctx, q.svc.text, q.criteria.clone(), maxPages)
}
