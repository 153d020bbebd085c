package search

import (
	"context"

	"github.com/Sternrassler/places-client/pkg/places"
)

// NearbySearch is a nearby search query builder.
type NearbySearch struct {
	paged
	svc      *Service
	criteria NearbyCriteria
}

// WithLocation sets the search center (required).
func (q *NearbySearch) WithLocation(loc places.Location) *NearbySearch {
	q.criteria.Location = &loc
	return q
}

// WithRadius sets the search radius in meters.
func (q *NearbySearch) WithRadius(meters float64) *NearbySearch {
	q.criteria.Radius = &meters
	return q
}

// WithKeyword matches against all content indexed for a place.
func (q *NearbySearch) WithKeyword(keyword string) *NearbySearch {
	q.criteria.Keyword = keyword
	return q
}

// WithLanguage sets the result language.
func (q *NearbySearch) WithLanguage(lang places.Language) *NearbySearch {
	q.criteria.Language = lang
	return q
}

// WithMinPrice sets the lowest price level (0-4).
func (q *NearbySearch) WithMinPrice(level int) *NearbySearch {
	q.criteria.MinPrice = &level
	return q
}

// WithMaxPrice sets the highest price level (0-4).
func (q *NearbySearch) WithMaxPrice(level int) *NearbySearch {
	q.criteria.MaxPrice = &level
	return q
}

// WithOpenNow restricts results to places open at query time.
func (q *NearbySearch) WithOpenNow(open bool) *NearbySearch {
	q.criteria.OpenNow = &open
	return q
}

// WithRankBy sets the result order.
func (q *NearbySearch) WithRankBy(r places.RankBy) *NearbySearch {
	q.criteria.RankBy = r
	return q
}

// WithType restricts results to one place type.
func (q *NearbySearch) WithType(t places.PlaceType) *NearbySearch {
	q.criteria.Type = t
	return q
}

// WithPageToken starts from a continuation token.
func (q *NearbySearch) WithPageToken(token string) *NearbySearch {
	q.criteria.PageToken = token
	return q
}

// Criteria returns a copy of the configured criteria.
func (q *NearbySearch) Criteria() NearbyCriteria {
	return q.criteria.clone()
}

// Clone returns an independent builder with the same criteria and no result.
func (q *NearbySearch) Clone() *NearbySearch {
	return &NearbySearch{svc: q.svc, criteria: q.criteria.clone()}
}

// Execute fetches up to maxPages pages and returns the merged result.
func (q *NearbySearch) Execute(ctx context.Context, maxPages int) (*Result, error) {
	return q.run(ctx, q.svc.nearby, q.criteria.clone(), maxPages)
}
