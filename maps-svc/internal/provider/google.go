package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"restaurant-lookup/maps-svc/internal/domain"
)

const (
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"
	DefaultTimeout = 10 * time.Second
)

// Client talks to the Google Maps geocoding and places web services.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithRateLimit caps outgoing requests per second; zero disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func NewClient(apiKey string, logger arbor.ILogger, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a free-text address to the coordinates of its best match.
func (c *Client) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &resp); err != nil {
		return domain.Coordinates{}, err
	}

	if resp.Status != statusOK || len(resp.Results) == 0 {
		c.logger.Info().
			Str("address", address).
			Str("status", resp.Status).
			Msg("Geocoding returned no match")
		return domain.Coordinates{}, fmt.Errorf("%w: no coordinates for %q (status %s)", domain.ErrNotFound, address, resp.Status)
	}

	first := resp.Results[0]
	if first.Geometry == nil || first.Geometry.Location == nil {
		return domain.Coordinates{}, fmt.Errorf("%w: geocode result for %q has no location", domain.ErrUpstream, address)
	}

	return domain.Coordinates{
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}, nil
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", formatLatLng(lat, lon))

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &resp); err != nil {
		return "", err
	}

	switch {
	case resp.Status == statusZeroResults || (resp.Status == statusOK && len(resp.Results) == 0):
		return "", fmt.Errorf("%w: no address for %s", domain.ErrNotFound, formatLatLng(lat, lon))
	case resp.Status != statusOK:
		return "", fmt.Errorf("%w: reverse geocoding failed: %s %s", domain.ErrUpstream, resp.Status, resp.ErrorMessage)
	}

	return resp.Results[0].FormattedAddress, nil
}

// NearbySearch lists places matching keyword within radius meters of coords.
func (c *Client) NearbySearch(ctx context.Context, coords domain.Coordinates, radius int, keyword string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(coords.Latitude, coords.Longitude))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("keyword", keyword)

	var resp nearbySearchResponse
	if err := c.getJSON(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, fmt.Errorf("%w: nearby search failed: %s %s", domain.ErrUpstream, resp.Status, resp.ErrorMessage)
	}

	places := make([]domain.Place, 0, len(resp.Results))
	for _, result := range resp.Results {
		address := result.Vicinity
		if address == "" {
			address = result.FormattedAddress
		}
		places = append(places, domain.Place{
			ID:      result.PlaceID,
			Name:    result.Name,
			Address: address,
			Rating:  result.Rating,
		})
	}

	c.logger.Info().
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Int("radius", radius).
		Str("keyword", keyword).
		Str("status", resp.Status).
		Int("results_count", len(places)).
		Msg("Google Places Nearby Search completed")

	return places, nil
}

func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*domain.RestaurantDetail, error) {
	params := url.Values{}
	params.Set("place_id", placeID)

	var resp detailsResponse
	if err := c.getJSON(ctx, "/place/details/json", params, &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case statusOK:
	case statusNotFound, statusZeroResults, statusInvalidRequest:
		return nil, fmt.Errorf("%w: place %s (status %s)", domain.ErrNotFound, placeID, resp.Status)
	default:
		return nil, fmt.Errorf("%w: place details failed: %s %s", domain.ErrUpstream, resp.Status, resp.ErrorMessage)
	}

	return toDetail(placeID, resp.Result), nil
}

func toDetail(placeID string, result detailResult) *domain.RestaurantDetail {
	detail := &domain.RestaurantDetail{
		PlaceID:              result.PlaceID,
		Name:                 result.Name,
		FormattedAddress:     result.FormattedAddress,
		Rating:               result.Rating,
		UserRatingsTotal:     result.UserRatingsTotal,
		FormattedPhoneNumber: result.FormattedPhoneNumber,
		Website:              result.Website,
		URL:                  result.URL,
		PriceLevel:           result.PriceLevel,
		BusinessStatus:       result.BusinessStatus,
		Types:                result.Types,
	}
	if detail.PlaceID == "" {
		detail.PlaceID = placeID
	}
	if result.Geometry != nil && result.Geometry.Location != nil {
		detail.Location = &domain.GeoPoint{
			Lat: result.Geometry.Location.Lat,
			Lon: result.Geometry.Location.Lng,
		}
	}
	for _, review := range result.Reviews {
		detail.Reviews = append(detail.Reviews, domain.Review{
			AuthorName: review.AuthorName,
			Rating:     review.Rating,
			Text:       review.Text,
			Time:       review.Time,
		})
	}
	return detail
}

// getJSON issues a GET against path and decodes the body into out. Transport
// failures and non-2xx statuses are reported as domain.ErrUpstream.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %v", domain.ErrUpstream, err)
		}
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + path
	logURL := endpoint + "?" + params.Encode() + "&key=***REDACTED***"
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to build request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", logURL).Msg("Calling Google Maps API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to call Google Maps API: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: Google Maps API returned status %d: %s", domain.ErrUpstream, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode API response: %v", domain.ErrUpstream, err)
	}
	return nil
}

func formatLatLng(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
