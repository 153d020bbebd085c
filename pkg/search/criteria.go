package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Sternrassler/places-client/pkg/pagination"
	"github.com/Sternrassler/places-client/pkg/places"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of c and reports the first violation
// as a plain error naming the field.
func validateStruct(c any) error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	case "required_without":
		return fmt.Errorf("%s or %s is required", strings.ToLower(fe.Field()), strings.ToLower(fe.Param()))
	default:
		return fmt.Errorf("%s fails %s=%s (got %v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), fe.Value())
	}
}

func checkPriceRange(minPrice, maxPrice *int) error {
	if minPrice != nil && maxPrice != nil && *minPrice > *maxPrice {
		return fmt.Errorf("minprice %d exceeds maxprice %d", *minPrice, *maxPrice)
	}
	return nil
}

// params collects wire parameters in insertion order.
type params []pagination.Param

func (p *params) add(name, value string) {
	*p = append(*p, pagination.Param{Name: name, Value: value})
}

func (p *params) str(name, value string) {
	if value != "" {
		p.add(name, value)
	}
}

func (p *params) float(name string, value *float64) {
	if value != nil {
		p.add(name, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

func (p *params) int(name string, value *int) {
	if value != nil {
		p.add(name, strconv.Itoa(*value))
	}
}

func (p *params) bool(name string, value *bool) {
	if value != nil {
		p.add(name, strconv.FormatBool(*value))
	}
}

func (p *params) location(name string, value *places.Location) {
	if value != nil {
		p.add(name, value.String())
	}
}

// TextCriteria describes a text search. Query or Type must be set.
type TextCriteria struct {
	Query     string           `validate:"required_without=Type"`
	Type      places.PlaceType `validate:"required_without=Query"`
	Location  *places.Location
	Radius    *float64 `validate:"omitempty,gt=0,lte=50000"`
	Language  places.Language
	MinPrice  *int `validate:"omitempty,min=0,max=4"`
	MaxPrice  *int `validate:"omitempty,min=0,max=4"`
	OpenNow   *bool
	Region    string `validate:"omitempty,len=2"`
	PageToken string
}

// Validate implements pagination.Criteria.
func (c TextCriteria) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	return checkPriceRange(c.MinPrice, c.MaxPrice)
}

// Params implements pagination.Criteria.
func (c TextCriteria) Params() []pagination.Param {
	var p params
	p.str("query", c.Query)
	p.float("radius", c.Radius)
	p.str("language", string(c.Language))
	p.location("location", c.Location)
	p.int("maxprice", c.MaxPrice)
	p.int("minprice", c.MinPrice)
	p.bool("opennow", c.OpenNow)
	p.str("pagetoken", c.PageToken)
	p.str("region", c.Region)
	p.str("type", string(c.Type))
	return p
}

// WithPageToken implements pagination.Criteria.
func (c TextCriteria) WithPageToken(token string) pagination.Criteria {
	c.PageToken = token
	return c
}

func (c TextCriteria) clone() TextCriteria {
	c.Location = clonePtr(c.Location)
	c.Radius = clonePtr(c.Radius)
	c.MinPrice = clonePtr(c.MinPrice)
	c.MaxPrice = clonePtr(c.MaxPrice)
	c.OpenNow = clonePtr(c.OpenNow)
	return c
}

// NearbyCriteria describes a nearby search. Location must be set.
type NearbyCriteria struct {
	Location  *places.Location `validate:"required"`
	Radius    *float64         `validate:"omitempty,gt=0,lte=50000"`
	Keyword   string
	Language  places.Language
	MinPrice  *int `validate:"omitempty,min=0,max=4"`
	MaxPrice  *int `validate:"omitempty,min=0,max=4"`
	OpenNow   *bool
	PageToken string
	RankBy    places.RankBy `validate:"omitempty,oneof=prominence distance"`
	Type      places.PlaceType
}

// Validate implements pagination.Criteria.
func (c NearbyCriteria) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	return checkPriceRange(c.MinPrice, c.MaxPrice)
}

// Params implements pagination.Criteria.
func (c NearbyCriteria) Params() []pagination.Param {
	var p params
	p.location("location", c.Location)
	p.float("radius", c.Radius)
	p.str("keyword", c.Keyword)
	p.str("language", string(c.Language))
	p.int("maxprice", c.MaxPrice)
	p.int("minprice", c.MinPrice)
	p.bool("opennow", c.OpenNow)
	p.str("pagetoken", c.PageToken)
	p.str("rankby", string(c.RankBy))
	p.str("type", string(c.Type))
	return p
}

// WithPageToken implements pagination.Criteria.
func (c NearbyCriteria) WithPageToken(token string) pagination.Criteria {
	c.PageToken = token
	return c
}

func (c NearbyCriteria) clone() NearbyCriteria {
	c.Location = clonePtr(c.Location)
	c.Radius = clonePtr(c.Radius)
	c.MinPrice = clonePtr(c.MinPrice)
	c.MaxPrice = clonePtr(c.MaxPrice)
	c.OpenNow = clonePtr(c.OpenNow)
	return c
}

// FindPlaceCriteria describes a find-place lookup. The endpoint returns a
// single page of candidates.
type FindPlaceCriteria struct {
	Input        string           `validate:"required"`
	InputType    places.InputType `validate:"required,oneof=textquery phonenumber"`
	Fields       []places.Field
	Language     places.Language
	LocationBias *places.LocationBias
}

// Validate implements pagination.Criteria.
func (c FindPlaceCriteria) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	for _, f := range c.Fields {
		if !f.ValidForSearch() {
			return fmt.Errorf("field %q is not available for find place", f)
		}
	}
	return nil
}

// Params implements pagination.Criteria.
func (c FindPlaceCriteria) Params() []pagination.Param {
	var p params
	p.str("input", c.Input)
	p.str("inputtype", string(c.InputType))
	p.str("fields", places.JoinFields(c.Fields))
	p.str("language", string(c.Language))
	if c.LocationBias != nil {
		p.add("locationbias", c.LocationBias.String())
	}
	return p
}

// WithPageToken implements pagination.Criteria. Find place is not
// paginated; the token is ignored.
func (c FindPlaceCriteria) WithPageToken(string) pagination.Criteria {
	return c
}

func (c FindPlaceCriteria) clone() FindPlaceCriteria {
	c.Fields = append([]places.Field(nil), c.Fields...)
	c.LocationBias = clonePtr(c.LocationBias)
	return c
}

// DetailsCriteria describes a details lookup for one place.
type DetailsCriteria struct {
	PlaceID               string `validate:"required"`
	Fields                []places.Field
	Language              places.Language
	Region                string `validate:"omitempty,len=2"`
	ReviewsNoTranslations *bool
	ReviewsSort           places.ReviewSort `validate:"omitempty,oneof=most_relevant newest"`
	SessionToken          string
}

// Validate reports a missing or out-of-range criterion.
func (c DetailsCriteria) Validate() error {
	return validateStruct(c)
}

// Params returns the wire parameters.
func (c DetailsCriteria) Params() []pagination.Param {
	var p params
	p.str("place_id", c.PlaceID)
	p.str("fields", places.JoinFields(c.Fields))
	p.str("language", string(c.Language))
	p.str("region", c.Region)
	p.bool("reviews_no_translations", c.ReviewsNoTranslations)
	p.str("reviews_sort", string(c.ReviewsSort))
	p.str("sessiontoken", c.SessionToken)
	return p
}

func (c DetailsCriteria) clone() DetailsCriteria {
	c.Fields = append([]places.Field(nil), c.Fields...)
	c.ReviewsNoTranslations = clonePtr(c.ReviewsNoTranslations)
	return c
}

// PhotoCriteria describes a photo download. At least one of MaxWidth and
// MaxHeight must be set; both are capped at 1600 pixels by the service.
type PhotoCriteria struct {
	PhotoReference string `validate:"required"`
	MaxWidth       int    `validate:"min=0,max=1600"`
	MaxHeight      int    `validate:"min=0,max=1600"`
}

// Validate reports a missing or out-of-range criterion.
func (c PhotoCriteria) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.MaxWidth == 0 && c.MaxHeight == 0 {
		return errors.New("maxwidth or maxheight is required")
	}
	return nil
}

// Params returns the wire parameters.
func (c PhotoCriteria) Params() []pagination.Param {
	var p params
	p.str("photo_reference", c.PhotoReference)
	if c.MaxWidth > 0 {
		p.add("maxwidth", strconv.Itoa(c.MaxWidth))
	}
	if c.MaxHeight > 0 {
		p.add("maxheight", strconv.Itoa(c.MaxHeight))
	}
	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
