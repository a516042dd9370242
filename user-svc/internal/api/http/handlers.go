package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"

	"restaurant-lookup/user-svc/internal/domain"
	"restaurant-lookup/user-svc/internal/service"
)

type Handler struct {
	Users  service.UserServiceInterface
	logger arbor.ILogger
}

func NewHandler(users service.UserServiceInterface, logger arbor.ILogger) *Handler {
	return &Handler{Users: users, logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.health).Methods("GET")

	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("/signup", h.signup).Methods("POST")
	users.HandleFunc("/login", h.login).Methods("POST")
	users.HandleFunc("/update", h.update).Methods("PUT")
	users.HandleFunc("/me", h.me).Methods("GET")
	users.HandleFunc("/{email}", h.delete).Methods("DELETE")
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "user-svc"})
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.Users.Signup(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User signed up successfully",
		"user":    user,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	session, err := h.Users.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "Login successful",
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	user, err := h.Users.Update(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

	user, err := h.Users.Me(r.Context(), token)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), mux.Vars(r)["email"]); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, errorResponse{Error: domain.Kind(err), Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
