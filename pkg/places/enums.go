package places

import (
	"fmt"
	"strings"
)

// Language is a result language code.
type Language string

const (
	LanguageArabic     Language = "ar"
	LanguageChinese    Language = "zh-CN"
	LanguageDutch      Language = "nl"
	LanguageEnglish    Language = "en"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguageHungarian  Language = "hu"
	LanguageItalian    Language = "it"
	LanguageJapanese   Language = "ja"
	LanguagePolish     Language = "pl"
	LanguagePortuguese Language = "pt"
	LanguageRomanian   Language = "ro"
	LanguageRussian    Language = "ru"
	LanguageSpanish    Language = "es"
	LanguageTurkish    Language = "tr"
)

// PlaceType restricts results to one category of place.
type PlaceType string

const (
	TypeAccounting        PlaceType = "accounting"
	TypeAirport           PlaceType = "airport"
	TypeBakery            PlaceType = "bakery"
	TypeBank              PlaceType = "bank"
	TypeBar               PlaceType = "bar"
	TypeBookStore         PlaceType = "book_store"
	TypeCafe              PlaceType = "cafe"
	TypeGasStation        PlaceType = "gas_station"
	TypeGym               PlaceType = "gym"
	TypeHospital          PlaceType = "hospital"
	TypeLodging           PlaceType = "lodging"
	TypeMuseum            PlaceType = "museum"
	TypePark              PlaceType = "park"
	TypePharmacy          PlaceType = "pharmacy"
	TypeRestaurant        PlaceType = "restaurant"
	TypeSupermarket       PlaceType = "supermarket"
	TypeTouristAttraction PlaceType = "tourist_attraction"
	TypeTrainStation      PlaceType = "train_station"
)

// RankBy orders nearby search results.
type RankBy string

const (
	RankByProminence RankBy = "prominence"
	RankByDistance   RankBy = "distance"
)

// ReviewSort orders the reviews attached to place details.
type ReviewSort string

const (
	ReviewSortMostRelevant ReviewSort = "most_relevant"
	ReviewSortNewest       ReviewSort = "newest"
)

// InputType tells the find-place endpoint how to interpret its input.
type InputType string

const (
	InputTypeText  InputType = "textquery"
	InputTypePhone InputType = "phonenumber"
)

// LocationBias prefers results in an area without restricting them to it.
// Exactly one of the shapes is set; the zero value means IP bias.
type LocationBias struct {
	point     *Location
	circle    *Location
	radius    float64
	southwest *Location
	northeast *Location
}

// IPBias biases results towards the caller's IP address.
func IPBias() LocationBias {
	return LocationBias{}
}

// PointBias biases results towards a single point.
func PointBias(loc Location) LocationBias {
	return LocationBias{point: &loc}
}

// CircleBias biases results towards a circle of radius meters.
func CircleBias(center Location, radius float64) LocationBias {
	return LocationBias{circle: &center, radius: radius}
}

// RectangleBias biases results towards a rectangle.
func RectangleBias(southwest, northeast Location) LocationBias {
	return LocationBias{southwest: &southwest, northeast: &northeast}
}

// String returns the wire form of the bias.
func (b LocationBias) String() string {
	switch {
	case b.point != nil:
		return "point:" + b.point.String()
	case b.circle != nil:
		return fmt.Sprintf("circle:%s@%s", formatFloat(b.radius), b.circle.String())
	case b.southwest != nil && b.northeast != nil:
		return fmt.Sprintf("rectangle:%s|%s", b.southwest.String(), b.northeast.String())
	default:
		return "ipbias"
	}
}

// JoinFields renders a field mask as the comma separated wire form.
func JoinFields(fields []Field) string {
	parts := make([]string, 0, len(fields))
	seen := make(map[Field]bool, len(fields))
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		parts = append(parts, string(f))
	}
	return strings.Join(parts, ",")
}
