package search

import (
	"errors"
	"testing"

	"github.com/Sternrassler/places-client/pkg/pagination"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTextCriteria_Params(t *testing.T) {
	loc := places.NewLocation(47.3769, 8.5417)
	c := TextCriteria{
		Query:    "coffee",
		Radius:   ptr(1000.0),
		Language: places.LanguageGerman,
		Location: &loc,
		MaxPrice: ptr(3),
		MinPrice: ptr(0),
		OpenNow:  ptr(true),
		Region:   "ch",
		Type:     places.TypeCafe,
	}

	want := []pagination.Param{
		{Name: "query", Value: "coffee"},
		{Name: "radius", Value: "1000"},
		{Name: "language", Value: "de"},
		{Name: "location", Value: "47.3769,8.5417"},
		{Name: "maxprice", Value: "3"},
		{Name: "minprice", Value: "0"},
		{Name: "opennow", Value: "true"},
		{Name: "region", Value: "ch"},
		{Name: "type", Value: "cafe"},
	}
	if diff := cmp.Diff(want, c.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestTextCriteria_ParamsOmitAbsent(t *testing.T) {
	c := TextCriteria{Query: "coffee"}

	want := []pagination.Param{{Name: "query", Value: "coffee"}}
	if diff := cmp.Diff(want, c.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}

	// Repeated calls give the same answer.
	assert.Equal(t, c.Params(), c.Params())
}

func TestTextCriteria_WithPageToken(t *testing.T) {
	c := TextCriteria{Query: "coffee"}

	next := c.WithPageToken("T1")

	assert.Empty(t, c.PageToken, "original criteria must not change")
	want := []pagination.Param{
		{Name: "query", Value: "coffee"},
		{Name: "pagetoken", Value: "T1"},
	}
	if diff := cmp.Diff(want, next.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestNearbyCriteria_Params(t *testing.T) {
	loc := places.NewLocation(46.7749, 7.1)
	c := NearbyCriteria{
		Location:  &loc,
		Radius:    ptr(1500.5),
		Keyword:   "vegan",
		PageToken: "T2",
		RankBy:    places.RankByProminence,
		Type:      places.TypeRestaurant,
	}

	want := []pagination.Param{
		{Name: "location", Value: "46.7749,7.1"},
		{Name: "radius", Value: "1500.5"},
		{Name: "keyword", Value: "vegan"},
		{Name: "pagetoken", Value: "T2"},
		{Name: "rankby", Value: "prominence"},
		{Name: "type", Value: "restaurant"},
	}
	if diff := cmp.Diff(want, c.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPlaceCriteria_Params(t *testing.T) {
	bias := places.CircleBias(places.NewLocation(1, 2), 500)
	c := FindPlaceCriteria{
		Input:        "Museum of Contemporary Art Australia",
		InputType:    places.InputTypeText,
		Fields:       []places.Field{places.FieldName, places.FieldPlaceID, places.FieldName},
		LocationBias: &bias,
	}

	want := []pagination.Param{
		{Name: "input", Value: "Museum of Contemporary Art Australia"},
		{Name: "inputtype", Value: "textquery"},
		{Name: "fields", Value: "name,place_id"},
		{Name: "locationbias", Value: "circle:500@1,2"},
	}
	if diff := cmp.Diff(want, c.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestDetailsCriteria_Params(t *testing.T) {
	c := DetailsCriteria{
		PlaceID:               "ChIJN1t_tDeuEmsRUsoyG83frY4",
		Fields:                []places.Field{places.FieldName, places.FieldWebsite},
		ReviewsNoTranslations: ptr(true),
		ReviewsSort:           places.ReviewSortNewest,
	}

	want := []pagination.Param{
		{Name: "place_id", Value: "ChIJN1t_tDeuEmsRUsoyG83frY4"},
		{Name: "fields", Value: "name,website"},
		{Name: "reviews_no_translations", Value: "true"},
		{Name: "reviews_sort", Value: "newest"},
	}
	if diff := cmp.Diff(want, c.Params()); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestCriteria_Validate(t *testing.T) {
	loc := places.NewLocation(0, 0)

	tests := []struct {
		name     string
		criteria interface{ Validate() error }
		wantErr  bool
	}{
		{name: "text with query", criteria: TextCriteria{Query: "coffee"}},
		{name: "text with type only", criteria: TextCriteria{Type: places.TypeCafe}},
		{name: "text without query or type", criteria: TextCriteria{Language: places.LanguageEnglish}, wantErr: true},
		{name: "text price above 4", criteria: TextCriteria{Query: "q", MaxPrice: ptr(5)}, wantErr: true},
		{name: "text min above max", criteria: TextCriteria{Query: "q", MinPrice: ptr(3), MaxPrice: ptr(1)}, wantErr: true},
		{name: "text zero radius", criteria: TextCriteria{Query: "q", Radius: ptr(0.0)}, wantErr: true},
		{name: "text region too long", criteria: TextCriteria{Query: "q", Region: "che"}, wantErr: true},
		{name: "nearby with location", criteria: NearbyCriteria{Location: &loc}},
		{name: "nearby without location", criteria: NearbyCriteria{Keyword: "coffee"}, wantErr: true},
		{name: "nearby bad rankby", criteria: NearbyCriteria{Location: &loc, RankBy: "rating"}, wantErr: true},
		{name: "find place", criteria: FindPlaceCriteria{Input: "x", InputType: places.InputTypePhone}},
		{name: "find place without input", criteria: FindPlaceCriteria{InputType: places.InputTypeText}, wantErr: true},
		{name: "find place without input type", criteria: FindPlaceCriteria{Input: "x"}, wantErr: true},
		{name: "find place details-only field", criteria: FindPlaceCriteria{Input: "x", InputType: places.InputTypeText, Fields: []places.Field{places.FieldReviews}}, wantErr: true},
		{name: "details", criteria: DetailsCriteria{PlaceID: "abc"}},
		{name: "details without id", criteria: DetailsCriteria{}, wantErr: true},
		{name: "details bad sort", criteria: DetailsCriteria{PlaceID: "abc", ReviewsSort: "oldest"}, wantErr: true},
		{name: "photo", criteria: PhotoCriteria{PhotoReference: "ref", MaxWidth: 400}},
		{name: "photo without size", criteria: PhotoCriteria{PhotoReference: "ref"}, wantErr: true},
		{name: "photo too wide", criteria: PhotoCriteria{PhotoReference: "ref", MaxWidth: 2000}, wantErr: true},
		{name: "photo without reference", criteria: PhotoCriteria{MaxHeight: 100}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTextCriteria_ValidateMessage(t *testing.T) {
	err := TextCriteria{}.Validate()
	require.Error(t, err)
	assert.Equal(t, "query or type is required", err.Error())
	assert.False(t, errors.Is(err, pagination.ErrPrecondition), "criteria errors are wrapped by the controller")
}

func TestCriteria_CloneIsDeep(t *testing.T) {
	loc := places.NewLocation(1, 2)
	c := TextCriteria{Query: "q", Location: &loc, Radius: ptr(10.0)}

	cloned := c.clone()
	cloned.Location.Lat = 99
	*cloned.Radius = 20

	assert.Equal(t, 1.0, c.Location.Lat)
	assert.Equal(t, 10.0, *c.Radius)

	d := DetailsCriteria{PlaceID: "a", Fields: []places.Field{places.FieldName}}
	dc := d.clone()
	dc.Fields[0] = places.FieldWebsite
	assert.Equal(t, places.FieldName, d.Fields[0])
}
