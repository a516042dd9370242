package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"golang.org/x/crypto/bcrypt"

	"restaurant-lookup/user-svc/internal/domain"
	"restaurant-lookup/user-svc/internal/mocks"
	"restaurant-lookup/user-svc/internal/service"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newUserService(t *testing.T) (*service.UserService, *mocks.UserRepository, *mocks.SessionStore, *mocks.SignupPublisher) {
	t.Helper()
	repository := mocks.NewUserRepository(t)
	sessions := mocks.NewSessionStore(t)
	publisher := mocks.NewSignupPublisher(t)
	svc := service.NewUserService(repository, sessions, publisher, time.Hour, arbor.NewLogger())
	return svc, repository, sessions, publisher
}

func TestUserService_Signup(t *testing.T) {
	svc, repository, _, publisher := newUserService(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		req           domain.SignupRequest
		prepareMocks  func()
		expectedError error
	}{
		{
			name: "success",
			req:  domain.SignupRequest{Username: " ann ", Password: "secret1", Email: " Ann@Example.com "},
			prepareMocks: func() {
				repository.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
					return u.Email == "ann@example.com" && u.Username == "ann" && u.ID != "" &&
						bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
				})).Return(nil).Once()
				publisher.On("PublishSignup", ctx, mock.MatchedBy(func(e domain.SignupEvent) bool {
					return e.Type == domain.SignupEventType && e.Email == "ann@example.com"
				})).Return(nil).Once()
			},
		},
		{
			name: "publish_failure_is_not_fatal",
			req:  domain.SignupRequest{Username: "bob", Password: "secret1", Email: "bob@example.com"},
			prepareMocks: func() {
				repository.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Once()
				publisher.On("PublishSignup", ctx, mock.Anything).Return(errors.New("broker down")).Once()
			},
		},
		{
			name: "duplicate_email",
			req:  domain.SignupRequest{Username: "ann", Password: "secret1", Email: "ann@example.com"},
			prepareMocks: func() {
				repository.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrUserExists).Once()
			},
			expectedError: domain.ErrUserExists,
		},
		{
			name:          "invalid_email",
			req:           domain.SignupRequest{Username: "ann", Password: "secret1", Email: "not-an-email"},
			prepareMocks:  func() {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "short_password",
			req:           domain.SignupRequest{Username: "ann", Password: "123", Email: "ann@example.com"},
			prepareMocks:  func() {},
			expectedError: domain.ErrInvalidInput,
		},
		{
			name:          "missing_username",
			req:           domain.SignupRequest{Username: "  ", Password: "secret1", Email: "ann@example.com"},
			prepareMocks:  func() {},
			expectedError: domain.ErrInvalidInput,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			user, err := svc.Signup(ctx, testCase.req)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestUserService_Login(t *testing.T) {
	svc, repository, sessions, _ := newUserService(t)
	ctx := context.Background()

	stored := &domain.User{ID: "u1", Username: "ann", Email: "ann@example.com", PasswordHash: hashPassword(t, "secret1")}

	tests := []struct {
		name          string
		req           domain.LoginRequest
		prepareMocks  func()
		expectedError error
		expectedMsg   string
	}{
		{
			name: "success",
			req:  domain.LoginRequest{Email: "ANN@example.com", Password: "secret1"},
			prepareMocks: func() {
				repository.On("GetByEmail", ctx, "ann@example.com").Return(stored, nil).Once()
				sessions.On("Save", ctx, mock.MatchedBy(func(s domain.Session) bool {
					return s.Token != "" && s.Email == "ann@example.com" && s.ExpiresAt.After(time.Now())
				})).Return(nil).Once()
			},
		},
		{
			name: "wrong_password",
			req:  domain.LoginRequest{Email: "ann@example.com", Password: "nope"},
			prepareMocks: func() {
				repository.On("GetByEmail", ctx, "ann@example.com").Return(stored, nil).Once()
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "unknown_user",
			req:  domain.LoginRequest{Email: "who@example.com", Password: "secret1"},
			prepareMocks: func() {
				repository.On("GetByEmail", ctx, "who@example.com").Return(nil, domain.ErrUserNotFound).Once()
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name: "session_store_failure",
			req:  domain.LoginRequest{Email: "ann@example.com", Password: "secret1"},
			prepareMocks: func() {
				repository.On("GetByEmail", ctx, "ann@example.com").Return(stored, nil).Once()
				sessions.On("Save", ctx, mock.Anything).Return(errors.New("redis down")).Once()
			},
			expectedMsg: "failed to store session: redis down",
		},
		{
			name:          "missing_password",
			req:           domain.LoginRequest{Email: "ann@example.com"},
			prepareMocks:  func() {},
			expectedError: domain.ErrInvalidInput,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			session, err := svc.Login(ctx, testCase.req)
			if testCase.expectedError != nil {
				assert.ErrorIs(t, err, testCase.expectedError)
				return
			}
			if testCase.expectedMsg != "" {
				assert.EqualError(t, err, testCase.expectedMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ann@example.com", session.Email)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	svc, repository, sessions, _ := newUserService(t)
	ctx := context.Background()

	t.Run("username_only_keeps_sessions", func(t *testing.T) {
		hash := hashPassword(t, "secret1")
		repository.On("GetByEmail", ctx, "ann@example.com").
			Return(&domain.User{ID: "u1", Username: "ann", Email: "ann@example.com", PasswordHash: hash}, nil).Once()
		repository.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "annie" && u.PasswordHash == hash
		})).Return(nil).Once()

		user, err := svc.Update(ctx, domain.UpdateRequest{Email: "ann@example.com", Username: "annie"})
		require.NoError(t, err)
		assert.Equal(t, "annie", user.Username)
	})

	t.Run("password_change_revokes_sessions", func(t *testing.T) {
		repository.On("GetByEmail", ctx, "ann@example.com").
			Return(&domain.User{ID: "u1", Username: "ann", Email: "ann@example.com", PasswordHash: hashPassword(t, "secret1")}, nil).Once()
		repository.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret2")) == nil
		})).Return(nil).Once()
		sessions.On("RevokeAll", ctx, "ann@example.com").Return(nil).Once()

		_, err := svc.Update(ctx, domain.UpdateRequest{Email: "ann@example.com", Password: "secret2"})
		require.NoError(t, err)
	})

	t.Run("unknown_user", func(t *testing.T) {
		repository.On("GetByEmail", ctx, "who@example.com").Return(nil, domain.ErrUserNotFound).Once()

		_, err := svc.Update(ctx, domain.UpdateRequest{Email: "who@example.com", Username: "x"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("short_password", func(t *testing.T) {
		_, err := svc.Update(ctx, domain.UpdateRequest{Email: "ann@example.com", Password: "123"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_Delete(t *testing.T) {
	svc, repository, sessions, _ := newUserService(t)
	ctx := context.Background()

	repository.On("Delete", ctx, "ann@example.com").Return(nil).Once()
	sessions.On("RevokeAll", ctx, "ann@example.com").Return(errors.New("redis down")).Once()
	assert.NoError(t, svc.Delete(ctx, " Ann@example.com"))

	repository.On("Delete", ctx, "who@example.com").Return(domain.ErrUserNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, "who@example.com"), domain.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "  "), domain.ErrInvalidInput)
}

func TestUserService_Me(t *testing.T) {
	svc, repository, sessions, _ := newUserService(t)
	ctx := context.Background()

	sessions.On("Email", ctx, "tok-1").Return("ann@example.com", nil).Once()
	repository.On("GetByEmail", ctx, "ann@example.com").Return(&domain.User{ID: "u1", Email: "ann@example.com"}, nil).Once()
	user, err := svc.Me(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	sessions.On("Email", ctx, "expired").Return("", domain.ErrSessionNotFound).Once()
	_, err = svc.Me(ctx, "expired")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// the account was deleted after the session was issued
	sessions.On("Email", ctx, "orphan").Return("gone@example.com", nil).Once()
	repository.On("GetByEmail", ctx, "gone@example.com").Return(nil, domain.ErrUserNotFound).Once()
	_, err = svc.Me(ctx, "orphan")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = svc.Me(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
