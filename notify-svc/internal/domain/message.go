package domain

import "time"

const SignupEventType = "user_signed_up"

// SignupEvent mirrors the payload user-svc publishes on the signup topic.
type SignupEvent struct {
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

type Notification struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
