package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	httpapi "restaurant-lookup/maps-svc/internal/api/http"
	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/mocks"
)

func setupTestRouter(lookup *mocks.LookupServiceInterface, activity *mocks.ActivityServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(lookup, activity, arbor.NewLogger())
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_nearbyRestaurants(t *testing.T) {
	lookup := mocks.NewLookupServiceInterface(t)
	router := setupTestRouter(lookup, mocks.NewActivityServiceInterface(t))

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "defaults_applied",
			payload: `{"location":"Seattle,WA"}`,
			prepareMocks: func() {
				lookup.On("FindNearby", mock.Anything, domain.LocationQuery{
					Location: "Seattle,WA", Radius: 5000, Keyword: "restaurant",
				}).Return([]domain.RestaurantRecord{{ID: "p1", Name: "Umi", Rating: rating(4.5)}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Umi"`,
		},
		{
			name:    "coordinates",
			payload: `{"latitude":47.6062,"longitude":-122.3321,"radius":800,"keyword":"ramen"}`,
			prepareMocks: func() {
				lookup.On("FindNearby", mock.Anything, domain.LocationQuery{
					Coordinates: &domain.Coordinates{Latitude: 47.6062, Longitude: -122.3321}, Radius: 800, Keyword: "ramen",
				}).Return([]domain.RestaurantRecord{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"message":"No restaurants found."`,
		},
		{
			name:    "validation_error_from_service",
			payload: `{"location":"Seattle,WA","radius":0}`,
			prepareMocks: func() {
				lookup.On("FindNearby", mock.Anything, mock.Anything).
					Return(nil, errors.Join(domain.ErrValidation, errors.New("radius must be positive"))).Once()
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `"error":"validation_error"`,
		},
		{
			name:    "location_not_found",
			payload: `{"location":"Atlantis"}`,
			prepareMocks: func() {
				lookup.On("FindNearby", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `"error":"not_found"`,
		},
		{
			name:         "latitude_without_longitude",
			payload:      `{"latitude":47.6}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "latitude_out_of_range",
			payload:      `{"latitude":147.6,"longitude":1}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := serve(router, "POST", "/maps/nearby_restaurants", testCase.payload)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_getLatLong(t *testing.T) {
	lookup := mocks.NewLookupServiceInterface(t)
	router := setupTestRouter(lookup, mocks.NewActivityServiceInterface(t))

	lookup.On("ResolveLocation", mock.Anything, "Seattle,WA").Return(seattle, nil).Once()
	recorder := serve(router, "POST", "/maps/get_lat_long", `{"location":"Seattle,WA"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"location":"Seattle,WA","latitude":47.6062,"longitude":-122.3321}`, recorder.Body.String())

	recorder = serve(router, "POST", "/maps/get_lat_long", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_reverseGeocode(t *testing.T) {
	lookup := mocks.NewLookupServiceInterface(t)
	router := setupTestRouter(lookup, mocks.NewActivityServiceInterface(t))

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
	}{
		{
			name:    "success",
			payload: `{"latitude":47.6062,"longitude":-122.3321}`,
			prepareMocks: func() {
				lookup.On("ReverseGeocode", mock.Anything, seattle).Return("Seattle, WA, USA", nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "zero_coordinates_are_valid",
			payload: `{"latitude":0,"longitude":0}`,
			prepareMocks: func() {
				lookup.On("ReverseGeocode", mock.Anything, domain.Coordinates{}).Return("", domain.ErrNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:    "upstream_error",
			payload: `{"latitude":1,"longitude":2}`,
			prepareMocks: func() {
				lookup.On("ReverseGeocode", mock.Anything, domain.Coordinates{Latitude: 1, Longitude: 2}).
					Return("", domain.ErrUpstream).Once()
			},
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "missing_longitude",
			payload:      `{"latitude":1}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := serve(router, "POST", "/maps/reverse_geocode", testCase.payload)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestHandler_restaurantDetailsAndReviews(t *testing.T) {
	lookup := mocks.NewLookupServiceInterface(t)
	router := setupTestRouter(lookup, mocks.NewActivityServiceInterface(t))

	lookup.On("GetDetails", mock.Anything, "p1").Return(&domain.RestaurantDetail{PlaceID: "p1", Name: "Umi"}, nil).Once()
	recorder := serve(router, "GET", "/maps/restaurant_details/p1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"details":{"place_id":"p1"`)

	lookup.On("GetDetails", mock.Anything, "place-123").Return(nil, domain.ErrUpstream).Once()
	recorder = serve(router, "GET", "/maps/restaurant_details/place-123", "")
	assert.Equal(t, http.StatusBadGateway, recorder.Code)

	lookup.On("GetReviews", mock.Anything, "place-999").Return(&domain.ReviewsResult{Total: 0}, nil).Once()
	recorder = serve(router, "GET", "/maps/restaurant_reviews/place-999", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"reviews":[],"total":0}`, recorder.Body.String())
}

func TestHandler_restaurantQRCode(t *testing.T) {
	lookup := mocks.NewLookupServiceInterface(t)
	router := setupTestRouter(lookup, mocks.NewActivityServiceInterface(t))

	lookup.On("ShareCode", mock.Anything, "p1").Return([]byte("png-bytes"), nil).Once()
	recorder := serve(router, "GET", "/maps/restaurant_qrcode/p1", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", recorder.Body.String())
}

func TestHandler_userReviews(t *testing.T) {
	activity := mocks.NewActivityServiceInterface(t)
	router := setupTestRouter(mocks.NewLookupServiceInterface(t), activity)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
	}{
		{
			name:    "created",
			payload: `{"user_id":"u1","restaurant_id":"r1","rating":5,"text":"Great"}`,
			prepareMocks: func() {
				activity.On("AddUserReview", mock.Anything, mock.MatchedBy(func(review *domain.UserReview) bool {
					return review.UserID == "u1" && review.Rating == 5
				})).Return(nil).Once()
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "rating_out_of_range",
			payload:      `{"user_id":"u1","restaurant_id":"r1","rating":9}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "index_down",
			payload: `{"user_id":"u1","restaurant_id":"r1","rating":3}`,
			prepareMocks: func() {
				activity.On("AddUserReview", mock.Anything, mock.Anything).Return(domain.ErrCache).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := serve(router, "POST", "/maps/user_reviews", testCase.payload)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}

	activity.On("ReviewsByRestaurant", mock.Anything, "r1").Return([]domain.UserReview{{UserID: "u1", RestaurantID: "r1", Rating: 5}}, nil).Once()
	recorder := serve(router, "GET", "/maps/restaurants/r1/user_reviews", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	var reviews []domain.UserReview
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&reviews))
	assert.Len(t, reviews, 1)

	activity.On("ReviewsByUser", mock.Anything, "u2").Return(nil, nil).Once()
	recorder = serve(router, "GET", "/maps/users/u2/reviews", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHandler_favorites(t *testing.T) {
	activity := mocks.NewActivityServiceInterface(t)
	router := setupTestRouter(mocks.NewLookupServiceInterface(t), activity)

	activity.On("AddFavorite", mock.Anything, mock.Anything).Return(nil).Once()
	recorder := serve(router, "POST", "/maps/favorites", `{"user_id":"u1","restaurant_id":"r1","name":"Umi"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, "POST", "/maps/favorites", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	activity.On("FavoritesByUser", mock.Anything, "u1").Return([]domain.Favorite{{UserID: "u1", RestaurantID: "r1"}}, nil).Once()
	recorder = serve(router, "GET", "/maps/users/u1/favorites", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"restaurant_id":"r1"`)
}

func TestHandler_health(t *testing.T) {
	router := setupTestRouter(mocks.NewLookupServiceInterface(t), mocks.NewActivityServiceInterface(t))

	recorder := serve(router, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"maps-svc"}`, recorder.Body.String())
}
