package search

import (
	"context"
	"fmt"
)

// Photo is a downloaded place photo.
type Photo struct {
	ContentType string
	Data        []byte
}

// PlacePhoto downloads the image behind a photo reference.
type PlacePhoto struct {
	svc      *Service
	criteria PhotoCriteria
}

// WithPhotoReference sets the reference from places.Photo (required).
func (q *PlacePhoto) WithPhotoReference(ref string) *PlacePhoto {
	q.criteria.PhotoReference = ref
	return q
}

// WithMaxWidth bounds the image width in pixels (1-1600).
func (q *PlacePhoto) WithMaxWidth(px int) *PlacePhoto {
	q.criteria.MaxWidth = px
	return q
}

// WithMaxHeight bounds the image height in pixels (1-1600).
func (q *PlacePhoto) WithMaxHeight(px int) *PlacePhoto {
	q.criteria.MaxHeight = px
	return q
}

// Criteria returns the configured criteria.
func (q *PlacePhoto) Criteria() PhotoCriteria {
	return q.criteria
}

// Clone returns an independent builder with the same criteria.
func (q *PlacePhoto) Clone() *PlacePhoto {
	return &PlacePhoto{svc: q.svc, criteria: q.criteria}
}

// Execute downloads the photo.
func (q *PlacePhoto) Execute(ctx context.Context) (*Photo, error) {
	if err := q.criteria.Validate(); err != nil {
		return nil, preconditionf("%w", err)
	}

	resp, err := q.svc.transport.Get(ctx, EndpointPhoto, toQuery(q.criteria.Params()))
	if err != nil {
		return nil, fmt.Errorf("fetch photo: %w", err)
	}

	return &Photo{ContentType: resp.ContentType, Data: resp.Body}, nil
}
