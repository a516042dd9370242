package service

import (
	"context"

	"restaurant-lookup/user-svc/internal/domain"
	"restaurant-lookup/user-svc/internal/storage"
)

type UserServiceInterface interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	Update(ctx context.Context, req domain.UpdateRequest) (*domain.User, error)
	Delete(ctx context.Context, email string) error
	Me(ctx context.Context, token string) (*domain.User, error)
}

// UserRepository stores accounts keyed by email. Create fails with
// domain.ErrUserExists, the others with domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, email string) error
}

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Email(ctx context.Context, token string) (string, error)
	RevokeAll(ctx context.Context, email string) error
}

type SignupPublisher interface {
	PublishSignup(ctx context.Context, event domain.SignupEvent) error
}

var (
	_ UserServiceInterface = (*UserService)(nil)
	_ UserRepository       = (*storage.PostgresRepository)(nil)
	_ UserRepository       = (*storage.MemoryRepository)(nil)
	_ SessionStore         = (*storage.RedisSessionStore)(nil)
	_ SignupPublisher      = (*storage.KafkaPublisher)(nil)
)
