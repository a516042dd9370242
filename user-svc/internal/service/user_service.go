package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"golang.org/x/crypto/bcrypt"

	"restaurant-lookup/user-svc/internal/domain"
)

const DefaultSessionTTL = 24 * time.Hour

type UserService struct {
	repository UserRepository
	sessions   SessionStore
	publisher  SignupPublisher
	validate   *validator.Validate
	sessionTTL time.Duration
	logger     arbor.ILogger
	now        func() time.Time
}

func NewUserService(repository UserRepository, sessions SessionStore, publisher SignupPublisher, sessionTTL time.Duration, logger arbor.ILogger) *UserService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &UserService{
		repository: repository,
		sessions:   sessions,
		publisher:  publisher,
		validate:   validator.New(),
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *UserService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User signed up")

	if s.publisher != nil {
		event := domain.SignupEvent{
			Type:      domain.SignupEventType,
			UserID:    user.ID,
			Email:     user.Email,
			Username:  user.Username,
			Timestamp: user.CreatedAt,
		}
		if err := s.publisher.PublishSignup(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to publish signup event")
		}
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, err := s.repository.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{
		Token:     uuid.NewString(),
		Email:     user.Email,
		ExpiresAt: s.now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &session, nil
}

// Update applies the non-empty fields of req. A password change revokes the
// user's open sessions.
func (s *UserService) Update(ctx context.Context, req domain.UpdateRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user, err := s.repository.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repository.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		s.revokeSessions(ctx, user.Email)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	if err := s.repository.Delete(ctx, email); err != nil {
		return err
	}

	s.revokeSessions(ctx, email)
	s.logger.Info().Str("email", email).Msg("User deleted")
	return nil
}

func (s *UserService) revokeSessions(ctx context.Context, email string) {
	if err := s.sessions.RevokeAll(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("Failed to revoke sessions")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Me returns the account owning a live session token.
func (s *UserService) Me(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	email, err := s.sessions.Email(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repository.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrSessionNotFound
	}
	return user, err
}
