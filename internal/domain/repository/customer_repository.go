package repository

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// CustomerRepository définit le port de persistance des clients de facturation.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetByPhone sert à la création paresseuse depuis une commande (nil si absent).
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}
