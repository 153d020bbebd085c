package places

import "fmt"

// Field selects one attribute of a place in a field mask.
type Field string

// Basic data.
const (
	FieldAddressComponents            Field = "address_components"
	FieldAdrAddress                   Field = "adr_address"
	FieldBusinessStatus               Field = "business_status"
	FieldFormattedAddress             Field = "formatted_address"
	FieldViewport                     Field = "geometry/viewport"
	FieldLocation                     Field = "geometry/location"
	FieldIcon                         Field = "icon"
	FieldIconMaskBaseURI              Field = "icon_mask_base_uri"
	FieldIconBackgroundColor          Field = "icon_background_color"
	FieldName                         Field = "name"
	FieldPhoto                        Field = "photos"
	FieldPlaceID                      Field = "place_id"
	FieldPlusCode                     Field = "plus_code"
	FieldType                         Field = "type"
	FieldURL                          Field = "url"
	FieldUTCOffset                    Field = "utc_offset"
	FieldVicinity                     Field = "vicinity"
	FieldWheelchairAccessibleEntrance Field = "wheelchair_accessible_entrance"
)

// Contact data.
const (
	FieldFormattedPhoneNumber     Field = "formatted_phone_number"
	FieldInternationalPhoneNumber Field = "international_phone_number"
	FieldOpeningHours             Field = "opening_hours"
	FieldCurrentOpeningHours      Field = "current_opening_hours"
	FieldSecondaryOpeningHours    Field = "secondary_opening_hours"
	FieldWebsite                  Field = "website"
)

// Atmosphere data.
const (
	FieldCurbsidePickup       Field = "curbside_pickup"
	FieldDelivery             Field = "delivery"
	FieldDineIn               Field = "dine_in"
	FieldEditorialSummary     Field = "editorial_summary"
	FieldPriceLevel           Field = "price_level"
	FieldRating               Field = "rating"
	FieldReservable           Field = "reservable"
	FieldReviews              Field = "reviews"
	FieldServesBeer           Field = "serves_beer"
	FieldServesBreakfast      Field = "serves_breakfast"
	FieldServesBrunch         Field = "serves_brunch"
	FieldServesDinner         Field = "serves_dinner"
	FieldServesLunch          Field = "serves_lunch"
	FieldServesVegetarianFood Field = "serves_vegetarian_food"
	FieldServesWine           Field = "serves_wine"
	FieldTakeout              Field = "takeout"
	FieldUserRatingsTotal     Field = "user_ratings_total"
)

// searchFields are the fields the find-place endpoint accepts in its mask.
var searchFields = map[Field]bool{
	FieldBusinessStatus:      true,
	FieldFormattedAddress:    true,
	FieldViewport:            true,
	FieldLocation:            true,
	FieldIcon:                true,
	FieldIconMaskBaseURI:     true,
	FieldIconBackgroundColor: true,
	FieldName:                true,
	FieldPhoto:               true,
	FieldPlaceID:             true,
	FieldPlusCode:            true,
	FieldType:                true,
	FieldVicinity:            true,
	FieldOpeningHours:        true,
	FieldPriceLevel:          true,
	FieldRating:              true,
	FieldUserRatingsTotal:    true,
}

// ValidForSearch reports whether f may appear in a find-place field mask.
func (f Field) ValidForSearch() bool {
	return searchFields[f]
}

// ParseField converts a wire name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := allFields[f]; !ok {
		return "", fmt.Errorf("unknown place field %q", s)
	}
	return f, nil
}

var allFields = map[Field]struct{}{}

func init() {
	for _, f := range []Field{
		FieldAddressComponents, FieldAdrAddress, FieldBusinessStatus, FieldFormattedAddress,
		FieldViewport, FieldLocation, FieldIcon, FieldIconMaskBaseURI, FieldIconBackgroundColor,
		FieldName, FieldPhoto, FieldPlaceID, FieldPlusCode, FieldType, FieldURL, FieldUTCOffset,
		FieldVicinity, FieldWheelchairAccessibleEntrance,
		FieldFormattedPhoneNumber, FieldInternationalPhoneNumber, FieldOpeningHours,
		FieldCurrentOpeningHours, FieldSecondaryOpeningHours, FieldWebsite,
		FieldCurbsidePickup, FieldDelivery, FieldDineIn, FieldEditorialSummary, FieldPriceLevel,
		FieldRating, FieldReservable, FieldReviews, FieldServesBeer, FieldServesBreakfast,
		FieldServesBrunch, FieldServesDinner, FieldServesLunch, FieldServesVegetarianFood,
		FieldServesWine, FieldTakeout, FieldUserRatingsTotal,
	} {
		allFields[f] = struct{}{}
	}
}
