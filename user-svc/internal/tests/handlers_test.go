package tests

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ternarybob/arbor"

	httpapi "restaurant-lookup/user-svc/internal/api/http"
	"restaurant-lookup/user-svc/internal/domain"
	"restaurant-lookup/user-svc/internal/mocks"
)

func setupTestRouter(users *mocks.UserServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(users, arbor.NewLogger())
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func serve(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_signup(t *testing.T) {
	users := mocks.NewUserServiceInterface(t)
	router := setupTestRouter(users)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "created",
			payload: `{"username":"ann","password":"secret1","email":"ann@example.com"}`,
			prepareMocks: func() {
				users.On("Signup", mock.Anything, domain.SignupRequest{Username: "ann", Password: "secret1", Email: "ann@example.com"}).
					Return(&domain.User{ID: "u1", Username: "ann", Email: "ann@example.com", PasswordHash: "hash"}, nil).Once()
			},
			expectedCode: http.StatusCreated,
			expectedBody: `"message":"User signed up successfully"`,
		},
		{
			name:    "duplicate",
			payload: `{"username":"ann","password":"secret1","email":"ann@example.com"}`,
			prepareMocks: func() {
				users.On("Signup", mock.Anything, mock.Anything).Return(nil, domain.ErrUserExists).Once()
			},
			expectedCode: http.StatusConflict,
			expectedBody: `"error":"user_exists"`,
		},
		{
			name:         "invalid_json",
			payload:      `{"username":`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `"error":"validation_error"`,
		},
		{
			name:    "internal_failure",
			payload: `{"username":"ann","password":"secret1","email":"ann@example.com"}`,
			prepareMocks: func() {
				users.On("Signup", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `"error":"internal_error"`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			recorder := serve(router, http.MethodPost, "/users/signup", testCase.payload, nil)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			assert.NotContains(t, recorder.Body.String(), "hash")
		})
	}
}

func TestHandler_login(t *testing.T) {
	users := mocks.NewUserServiceInterface(t)
	router := setupTestRouter(users)

	users.On("Login", mock.Anything, domain.LoginRequest{Email: "ann@example.com", Password: "secret1"}).
		Return(&domain.Session{Token: "tok-1", Email: "ann@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	recorder := serve(router, http.MethodPost, "/users/login", `{"email":"ann@example.com","password":"secret1"}`, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"token":"tok-1"`)

	users.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials).Once()
	recorder = serve(router, http.MethodPost, "/users/login", `{"email":"ann@example.com","password":"bad"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"invalid_credentials"`)
}

func TestHandler_update(t *testing.T) {
	users := mocks.NewUserServiceInterface(t)
	router := setupTestRouter(users)

	users.On("Update", mock.Anything, domain.UpdateRequest{Email: "ann@example.com", Username: "annie"}).
		Return(&domain.User{ID: "u1", Username: "annie", Email: "ann@example.com"}, nil).Once()
	recorder := serve(router, http.MethodPut, "/users/update", `{"email":"ann@example.com","username":"annie"}`, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"username":"annie"`)

	users.On("Update", mock.Anything, mock.Anything).Return(nil, domain.ErrUserNotFound).Once()
	recorder = serve(router, http.MethodPut, "/users/update", `{"email":"who@example.com","username":"x"}`, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_me(t *testing.T) {
	users := mocks.NewUserServiceInterface(t)
	router := setupTestRouter(users)

	users.On("Me", mock.Anything, "tok-1").Return(&domain.User{ID: "u1", Email: "ann@example.com"}, nil).Once()
	recorder := serve(router, http.MethodGet, "/users/me", "", map[string]string{"Authorization": "Bearer tok-1"})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":"u1"`)

	users.On("Me", mock.Anything, "").Return(nil, domain.ErrSessionNotFound).Once()
	recorder = serve(router, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"unauthorized"`)
}

func TestHandler_delete(t *testing.T) {
	users := mocks.NewUserServiceInterface(t)
	router := setupTestRouter(users)

	users.On("Delete", mock.Anything, "ann@example.com").Return(nil).Once()
	recorder := serve(router, http.MethodDelete, "/users/ann@example.com", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	users.On("Delete", mock.Anything, "who@example.com").Return(domain.ErrUserNotFound).Once()
	recorder = serve(router, http.MethodDelete, "/users/who@example.com", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_userHealth(t *testing.T) {
	router := setupTestRouter(mocks.NewUserServiceInterface(t))

	recorder := serve(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"user-svc"}`, recorder.Body.String())
}
