package provider

// Wire shapes of the Google Maps web service responses. Only the fields the
// service reads are declared.

const (
	statusOK             = "OK"
	statusZeroResults    = "ZERO_RESULTS"
	statusNotFound       = "NOT_FOUND"
	statusInvalidRequest = "INVALID_REQUEST"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

type geocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type geocodeResult struct {
	FormattedAddress string    `json:"formatted_address"`
	Geometry         *geometry `json:"geometry,omitempty"`
}

type nearbySearchResponse struct {
	Results       []placeResult `json:"results"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

type placeResult struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity,omitempty"`
	FormattedAddress string    `json:"formatted_address,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
	Geometry         *geometry `json:"geometry,omitempty"`
}

type detailsResponse struct {
	Result       detailResult `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

type detailResult struct {
	PlaceID              string         `json:"place_id"`
	Name                 string         `json:"name"`
	FormattedAddress     string         `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string         `json:"formatted_phone_number,omitempty"`
	Website              string         `json:"website,omitempty"`
	URL                  string         `json:"url,omitempty"`
	BusinessStatus       string         `json:"business_status,omitempty"`
	Rating               *float64       `json:"rating,omitempty"`
	UserRatingsTotal     int            `json:"user_ratings_total,omitempty"`
	PriceLevel           *int           `json:"price_level,omitempty"`
	Types                []string       `json:"types,omitempty"`
	Geometry             *geometry      `json:"geometry,omitempty"`
	Reviews              []reviewResult `json:"reviews,omitempty"`
}

type reviewResult struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time,omitempty"`
}
