package repository

import (
	"context"
	"errors"
	"time"

	authdomain "campusboard-backend/internal/auth/domain"

	"gorm.io/gorm"
)

// gormAuthGateway resolves bearer tokens against the session table the
// login flow writes to. It is the default AuthGateway wiring; deployments
// that keep sessions elsewhere swap in their own implementation.
type gormAuthGateway struct {
	db *gorm.DB
}

// NewAuthGateway creates a session-token backed AuthGateway.
func NewAuthGateway(db *gorm.DB) authdomain.AuthGateway {
	return &gormAuthGateway{
		db: db,
	}
}

func (g *gormAuthGateway) ResolveUser(ctx context.Context, token string) (*authdomain.User, error) {
	if token == "" {
		return nil, authdomain.ErrUnauthenticated
	}

	var session authdomain.SessionToken
	err := g.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUnauthenticated
		}
		return nil, err
	}

	var account authdomain.Account
	err = g.db.WithContext(ctx).
		Where("id = ?", session.AccountID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUnauthenticated
		}
		return nil, err
	}

	return &authdomain.User{
		ID:     account.ID,
		Email:  account.Email,
		Status: account.Status,
	}, nil
}
