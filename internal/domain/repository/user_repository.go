package repository

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// UserRepository définit le port de persistance des comptes.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
