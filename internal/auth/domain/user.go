package domain

import (
	"context"
	"errors"
	"time"
)

// AccountStatus mirrors the moderation state kept by the account system.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusMuted  AccountStatus = "muted"
	StatusBanned AccountStatus = "banned"
)

// User is the resolved identity behind a bearer token.
type User struct {
	ID     string        `json:"id"`
	Email  string        `json:"email"`
	Status AccountStatus `json:"status"`
}

// ErrUnauthenticated is returned when a bearer token does not resolve
// to a user (missing, expired or revoked).
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthGateway resolves opaque bearer tokens to user identities.
// Account management itself lives outside this service.
type AuthGateway interface {
	ResolveUser(ctx context.Context, token string) (*User, error)
}

// Account is the minimal slice of the account table this service reads.
type Account struct {
	ID        string        `json:"id" gorm:"primaryKey"`
	Email     string        `json:"email" gorm:"uniqueIndex;not null"`
	Status    AccountStatus `json:"status" gorm:"default:active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionToken is an opaque bearer token issued by the login flow.
type SessionToken struct {
	Token     string    `json:"-" gorm:"primaryKey"`
	AccountID string    `json:"account_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
