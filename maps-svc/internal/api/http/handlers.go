package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/maps-svc/internal/domain"
	"restaurant-lookup/maps-svc/internal/service"
)

type Handler struct {
	Lookup   service.LookupServiceInterface
	Activity service.ActivityServiceInterface
	logger   arbor.ILogger
	validate *validator.Validate
}

func NewHandler(lookup service.LookupServiceInterface, activity service.ActivityServiceInterface, logger arbor.ILogger) *Handler {
	return &Handler{
		Lookup:   lookup,
		Activity: activity,
		logger:   logger,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	maps := r.PathPrefix("/maps").Subrouter()
	maps.HandleFunc("/nearby_restaurants", h.nearbyRestaurants).Methods("POST")
	maps.HandleFunc("/get_lat_long", h.getLatLong).Methods("POST")
	maps.HandleFunc("/reverse_geocode", h.reverseGeocode).Methods("POST")
	maps.HandleFunc("/restaurant_details/{restaurant_id}", h.restaurantDetails).Methods("GET")
	maps.HandleFunc("/restaurant_reviews/{restaurant_id}", h.restaurantReviews).Methods("GET")
	maps.HandleFunc("/restaurant_qrcode/{restaurant_id}", h.restaurantQRCode).Methods("GET")
	maps.HandleFunc("/user_reviews", h.addUserReview).Methods("POST")
	maps.HandleFunc("/restaurants/{restaurant_id}/user_reviews", h.restaurantUserReviews).Methods("GET")
	maps.HandleFunc("/users/{user_id}/reviews", h.userReviews).Methods("GET")
	maps.HandleFunc("/favorites", h.addFavorite).Methods("POST")
	maps.HandleFunc("/users/{user_id}/favorites", h.userFavorites).Methods("GET")
}

type nearbyRequest struct {
	Location  string   `json:"location" validate:"max=512"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Radius    *int     `json:"radius"`
	Keyword   *string  `json:"keyword"`
}

type locationRequest struct {
	Location string `json:"location" validate:"required,max=512"`
}

type coordinatesRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "maps-svc"})
}

func (h *Handler) nearbyRestaurants(w http.ResponseWriter, r *http.Request) {
	var req nearbyRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		h.writeError(w, fmt.Errorf("%w: latitude and longitude must be given together", domain.ErrValidation))
		return
	}

	query := domain.LocationQuery{
		Location: req.Location,
		Radius:   domain.DefaultRadius,
		Keyword:  domain.DefaultKeyword,
	}
	if req.Latitude != nil {
		query.Coordinates = &domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	if req.Radius != nil {
		query.Radius = *req.Radius
	}
	if req.Keyword != nil {
		query.Keyword = *req.Keyword
	}

	restaurants, err := h.Lookup.FindNearby(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := map[string]any{"restaurants": restaurants}
	if len(restaurants) == 0 {
		response["restaurants"] = []domain.RestaurantRecord{}
		response["message"] = "No restaurants found."
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getLatLong(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	coords, err := h.Lookup.ResolveLocation(r.Context(), req.Location)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"location":  req.Location,
		"latitude":  coords.Latitude,
		"longitude": coords.Longitude,
	})
}

func (h *Handler) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	var req coordinatesRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	address, err := h.Lookup.ReverseGeocode(r.Context(), domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"location": address})
}

func (h *Handler) restaurantDetails(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Lookup.GetDetails(r.Context(), mux.Vars(r)["restaurant_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"details": detail})
}

func (h *Handler) restaurantReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Lookup.GetReviews(r.Context(), mux.Vars(r)["restaurant_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if reviews.Reviews == nil {
		reviews.Reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) restaurantQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Lookup.ShareCode(r.Context(), mux.Vars(r)["restaurant_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) addUserReview(w http.ResponseWriter, r *http.Request) {
	var review domain.UserReview
	if err := h.decode(r, &review); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.Activity.AddUserReview(r.Context(), &review); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (h *Handler) restaurantUserReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Activity.ReviewsByRestaurant(r.Context(), mux.Vars(r)["restaurant_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.UserReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) userReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Activity.ReviewsByUser(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.UserReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var favorite domain.Favorite
	if err := h.decode(r, &favorite); err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.Activity.AddFavorite(r.Context(), &favorite); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, favorite)
}

func (h *Handler) userFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.Activity.FavoritesByUser(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

// decode reads a JSON body into v and checks its validation tags.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrValidation, err)
	}
	if err := h.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: domain.Kind(err), Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrCache):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
