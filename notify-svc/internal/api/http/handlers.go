package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/notify-svc/internal/service"
)

type Handler struct {
	Notifications service.NotificationReader
	logger        arbor.ILogger
}

func NewHandler(notifications service.NotificationReader, logger arbor.ILogger) *Handler {
	return &Handler{Notifications: notifications, logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")
	r.HandleFunc("/notifications/{email}", h.list).Methods("GET")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "notify-svc"})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(mux.Vars(r)["email"]))

	notifications, err := h.Notifications.Notifications(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("Failed to load notifications")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
