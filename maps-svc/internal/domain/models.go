package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultRadius  = 5000
	DefaultKeyword = "restaurant"
)

// LocationQuery is the input of a nearby search. Either Location or
// Coordinates must be set; Coordinates skips geocoding.
type LocationQuery struct {
	Location    string
	Coordinates *Coordinates
	Radius      int
	Keyword     string
}

// Validate normalizes the keyword and checks the query before any I/O.
func (q *LocationQuery) Validate() error {
	q.Location = strings.TrimSpace(q.Location)
	q.Keyword = NormalizeKeyword(q.Keyword)

	if q.Location == "" && q.Coordinates == nil {
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	if q.Coordinates != nil {
		if err := q.Coordinates.Validate(); err != nil {
			return err
		}
	}
	if q.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %d", ErrValidation, q.Radius)
	}
	if q.Keyword == "" {
		return fmt.Errorf("%w: keyword is required", ErrValidation)
	}
	return nil
}

func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrValidation, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrValidation, c.Longitude)
	}
	return nil
}

// GeoPoint is the indexed shape of a coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) Point() GeoPoint {
	return GeoPoint{Lat: c.Latitude, Lon: c.Longitude}
}

// Place is a nearby-search result as returned by the provider.
type Place struct {
	ID      string
	Name    string
	Address string
	Rating  *float64
}

// RestaurantRecord is a nearby-search result as cached. Location is the
// search centre, not the place's own position.
type RestaurantRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Rating       *float64 `json:"rating"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Location     GeoPoint `json:"location"`
	SearchRadius int      `json:"search_radius"`
	Keyword      string   `json:"keyword"`
}

// CacheKey identifies the record within the search that produced it.
func (r RestaurantRecord) CacheKey() string {
	return fmt.Sprintf("%s|%.6f,%.6f|%d|%s", r.ID, r.Latitude, r.Longitude, r.SearchRadius, r.Keyword)
}

type Review struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time,omitempty"`
}

type RestaurantDetail struct {
	PlaceID              string    `json:"place_id"`
	Name                 string    `json:"name"`
	FormattedAddress     string    `json:"formatted_address"`
	Rating               *float64  `json:"rating,omitempty"`
	UserRatingsTotal     int       `json:"user_ratings_total"`
	Reviews              []Review  `json:"reviews,omitempty"`
	FormattedPhoneNumber string    `json:"formatted_phone_number,omitempty"`
	Website              string    `json:"website,omitempty"`
	URL                  string    `json:"url,omitempty"`
	PriceLevel           *int      `json:"price_level,omitempty"`
	BusinessStatus       string    `json:"business_status,omitempty"`
	Types                []string  `json:"types,omitempty"`
	Location             *GeoPoint `json:"location,omitempty"`
}

type ReviewsResult struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// InteractionRecord is written once per (search, place) pair on a cache miss.
type InteractionRecord struct {
	RestaurantID     string    `json:"restaurant_id"`
	Name             string    `json:"name"`
	SearchedLocation GeoPoint  `json:"searched_location"`
	Keyword          string    `json:"keyword"`
	Timestamp        time.Time `json:"timestamp"`
}

// UserReview is a review submitted by one of our users, keyed by
// (UserID, RestaurantID).
type UserReview struct {
	UserID       string    `json:"user_id" validate:"required"`
	RestaurantID string    `json:"restaurant_id" validate:"required"`
	Rating       int       `json:"rating" validate:"gte=1,lte=5"`
	Text         string    `json:"text" validate:"max=4000"`
	CreatedAt    time.Time `json:"created_at"`
}

type Favorite struct {
	UserID       string    `json:"user_id" validate:"required"`
	RestaurantID string    `json:"restaurant_id" validate:"required"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
