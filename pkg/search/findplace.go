package search

import (
	"context"

	"github.com/Sternrassler/places-client/pkg/places"
)

// FindPlace looks up places matching a text or phone number input.
type FindPlace struct {
	paged
	svc      *Service
	criteria FindPlaceCriteria
}

// WithInput sets the text or phone number to match (required).
func (q *FindPlace) WithInput(input string) *FindPlace {
	q.criteria.Input = input
	return q
}

// WithInputType sets how Input is interpreted. Defaults to InputTypeText.
func (q *FindPlace) WithInputType(t places.InputType) *FindPlace {
	q.criteria.InputType = t
	return q
}

// WithFields sets the field mask of the returned candidates.
func (q *FindPlace) WithFields(fields ...places.Field) *FindPlace {
	q.criteria.Fields = append([]places.Field(nil), fields...)
	return q
}

// WithLanguage sets the result language.
func (q *FindPlace) WithLanguage(lang places.Language) *FindPlace {
	q.criteria.Language = lang
	return q
}

// WithLocationBias prefers candidates in an area.
func (q *FindPlace) WithLocationBias(bias places.LocationBias) *FindPlace {
	q.criteria.LocationBias = &bias
	return q
}

// Criteria returns a copy of the configured criteria.
func (q *FindPlace) Criteria() FindPlaceCriteria {
	return q.criteria.clone()
}

// Clone returns an independent builder with the same criteria and no result.
func (q *FindPlace) Clone() *FindPlace {
	return &FindPlace{svc: q.svc, criteria: q.criteria.clone()}
}

// Execute performs the lookup. The endpoint has a single page.
func (q *FindPlace) Execute(ctx context.Context) (*Result, error) {
	return q.run(ctx, q.svc.find, q.criteria.clone(), 1)
}
