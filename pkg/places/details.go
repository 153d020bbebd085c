package places

import "strings"

// AddressComponent is one part of a structured address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// EditorialSummary is a short description of a place.
type EditorialSummary struct {
	Language string `json:"language,omitempty"`
	Overview string `json:"overview,omitempty"`
}

// Review is a user review attached to a place.
type Review struct {
	AuthorName              string  `json:"author_name"`
	AuthorURL               string  `json:"author_url,omitempty"`
	Language                string  `json:"language,omitempty"`
	ProfilePhotoURL         string  `json:"profile_photo_url,omitempty"`
	Rating                  float64 `json:"rating"`
	RelativeTimeDescription string  `json:"relative_time_description,omitempty"`
	Text                    string  `json:"text,omitempty"`
	Time                    int64   `json:"time"`
}

// PlaceDetails is the full record returned by the details endpoint.
type PlaceDetails struct {
	Place

	AddressComponents            []AddressComponent `json:"address_components,omitempty"`
	AdrAddress                   string             `json:"adr_address,omitempty"`
	FormattedPhoneNumber         string             `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber     string             `json:"international_phone_number,omitempty"`
	CurrentOpeningHours          *OpeningHours      `json:"current_opening_hours,omitempty"`
	SecondaryOpeningHours        []OpeningHours     `json:"secondary_opening_hours,omitempty"`
	EditorialSummary             *EditorialSummary  `json:"editorial_summary,omitempty"`
	Reviews                      []Review           `json:"reviews,omitempty"`
	URL                          string             `json:"url,omitempty"`
	UTCOffset                    *int               `json:"utc_offset,omitempty"`
	Website                      string             `json:"website,omitempty"`
	WheelchairAccessibleEntrance *bool              `json:"wheelchair_accessible_entrance,omitempty"`
	CurbsidePickup               *bool              `json:"curbside_pickup,omitempty"`
	Delivery                     *bool              `json:"delivery,omitempty"`
	DineIn                       *bool              `json:"dine_in,omitempty"`
	Reservable                   *bool              `json:"reservable,omitempty"`
	ServesBeer                   *bool              `json:"serves_beer,omitempty"`
	ServesBreakfast              *bool              `json:"serves_breakfast,omitempty"`
	ServesBrunch                 *bool              `json:"serves_brunch,omitempty"`
	ServesDinner                 *bool              `json:"serves_dinner,omitempty"`
	ServesLunch                  *bool              `json:"serves_lunch,omitempty"`
	ServesVegetarianFood         *bool              `json:"serves_vegetarian_food,omitempty"`
	ServesWine                   *bool              `json:"serves_wine,omitempty"`
	Takeout                      *bool              `json:"takeout,omitempty"`
}

// DetailsResult is the decoded response of a details lookup.
type DetailsResult struct {
	HTMLAttributions []string     `json:"html_attributions"`
	Place            PlaceDetails `json:"result"`
	Status           Status       `json:"status"`
	ErrorMessage     string       `json:"error_message,omitempty"`
	InfoMessages     []string     `json:"info_messages,omitempty"`
}

// Summary renders a one-line human readable description.
func (r DetailsResult) Summary() string {
	var b strings.Builder
	b.WriteString(string(r.Status))
	if r.Place.Name != "" {
		b.WriteString(" ")
		b.WriteString(r.Place.Name)
	}
	if r.Place.FormattedAddress != "" {
		b.WriteString(" (")
		b.WriteString(r.Place.FormattedAddress)
		b.WriteString(")")
	}
	if r.Place.Website != "" {
		b.WriteString(" ")
		b.WriteString(r.Place.Website)
	}
	return b.String()
}
