// Package places holds the wire models returned by the place-search service
// and the enumerations used to build requests against it.
package places

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewLocation creates a Location.
func NewLocation(lat, lng float64) Location {
	return Location{Lat: lat, Lng: lng}
}

// String returns the wire form "lat,lng".
func (l Location) String() string {
	return formatFloat(l.Lat) + "," + formatFloat(l.Lng)
}

// ParseLocation parses the "lat,lng" wire form.
func ParseLocation(s string) (Location, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Location{}, fmt.Errorf("parse location %q: missing comma", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse location latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("parse location longitude: %w", err)
	}
	return Location{Lat: lat, Lng: lng}, nil
}

// Viewport is the recommended display box for a place.
type Viewport struct {
	Northeast Location `json:"northeast"`
	Southwest Location `json:"southwest"`
}

// Geometry is the position and viewport of a place.
type Geometry struct {
	Location Location  `json:"location"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Photo references an image that can be fetched from the photo endpoint.
type Photo struct {
	Height           int      `json:"height"`
	Width            int      `json:"width"`
	HTMLAttributions []string `json:"html_attributions"`
	PhotoReference   string   `json:"photo_reference"`
}

// PlusCode is an encoded location reference.
type PlusCode struct {
	CompoundCode string `json:"compound_code,omitempty"`
	GlobalCode   string `json:"global_code"`
}

// OpeningHours describes when a place is open.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Place is a search result as returned by the text search, nearby search
// and find-place endpoints. Which fields are populated depends on the
// endpoint and on the requested field mask.
type Place struct {
	PlaceID             string        `json:"place_id"`
	Name                string        `json:"name,omitempty"`
	BusinessStatus      string        `json:"business_status,omitempty"`
	FormattedAddress    string        `json:"formatted_address,omitempty"`
	Vicinity            string        `json:"vicinity,omitempty"`
	Geometry            *Geometry     `json:"geometry,omitempty"`
	Icon                string        `json:"icon,omitempty"`
	IconBackgroundColor string        `json:"icon_background_color,omitempty"`
	IconMaskBaseURI     string        `json:"icon_mask_base_uri,omitempty"`
	OpeningHours        *OpeningHours `json:"opening_hours,omitempty"`
	Photos              []Photo       `json:"photos,omitempty"`
	PlusCode            *PlusCode     `json:"plus_code,omitempty"`
	PriceLevel          *int          `json:"price_level,omitempty"`
	Rating              *float64      `json:"rating,omitempty"`
	UserRatingsTotal    *int          `json:"user_ratings_total,omitempty"`
	Types               []string      `json:"types,omitempty"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
