package search

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/places-client/pkg/places"
)

// PlaceDetails fetches the full record of one place.
type PlaceDetails struct {
	svc      *Service
	criteria DetailsCriteria
	result   *places.DetailsResult
}

// WithPlaceID sets the place to look up (required).
func (q *PlaceDetails) WithPlaceID(id string) *PlaceDetails {
	q.criteria.PlaceID = id
	return q
}

// WithFields sets the field mask. An empty mask returns all fields.
func (q *PlaceDetails) WithFields(fields ...places.Field) *PlaceDetails {
	q.criteria.Fields = append([]places.Field(nil), fields...)
	return q
}

// WithLanguage sets the result language.
func (q *PlaceDetails) WithLanguage(lang places.Language) *PlaceDetails {
	q.criteria.Language = lang
	return q
}

// WithRegion sets the two-letter region code used to format the result.
func (q *PlaceDetails) WithRegion(region string) *PlaceDetails {
	q.criteria.Region = region
	return q
}

// WithReviewsNoTranslations disables review translation.
func (q *PlaceDetails) WithReviewsNoTranslations(disable bool) *PlaceDetails {
	q.criteria.ReviewsNoTranslations = &disable
	return q
}

// WithReviewsSort sets the review order.
func (q *PlaceDetails) WithReviewsSort(sort places.ReviewSort) *PlaceDetails {
	q.criteria.ReviewsSort = sort
	return q
}

// WithSessionToken groups the lookup with preceding autocomplete requests.
func (q *PlaceDetails) WithSessionToken(token string) *PlaceDetails {
	q.criteria.SessionToken = token
	return q
}

// Criteria returns a copy of the configured criteria.
func (q *PlaceDetails) Criteria() DetailsCriteria {
	return q.criteria.clone()
}

// Clone returns an independent builder with the same criteria and no result.
func (q *PlaceDetails) Clone() *PlaceDetails {
	return &PlaceDetails{svc: q.svc, criteria: q.criteria.clone()}
}

// Execute performs the lookup. A non-OK upstream status is returned in the
// result, not as an error.
func (q *PlaceDetails) Execute(ctx context.Context) (*places.DetailsResult, error) {
	result, err := q.svc.details(ctx, q.criteria.clone())
	if err != nil {
		return nil, err
	}
	q.result = result
	return result.Clone(), nil
}

// Result returns a copy of the last successful result, or nil.
func (q *PlaceDetails) Result() *places.DetailsResult {
	return q.result.Clone()
}

func (s *Service) details(ctx context.Context, criteria DetailsCriteria) (*places.DetailsResult, error) {
	if err := criteria.Validate(); err != nil {
		return nil, preconditionf("%w", err)
	}

	start := time.Now()
	var result places.DetailsResult
	if err := s.transport.GetJSON(ctx, EndpointDetails, toQuery(criteria.Params()), &result); err != nil {
		return nil, fmt.Errorf("fetch details for %s: %w", criteria.PlaceID, err)
	}

	s.logger.Debug().
		Str("endpoint", EndpointDetails).
		Str("place_id", criteria.PlaceID).
		Str("status", string(result.Status)).
		Dur("duration", time.Since(start)).
		Msg("Details fetched")

	return &result, nil
}
