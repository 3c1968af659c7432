package repository

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// ProductRepository définit le port de persistance du catalogue.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List retourne les produits actifs ; si category est vide, toutes catégories.
	List(ctx context.Context, category string, limit, offset int) ([]*entity.Product, error)
	// Search filtre par nom normalisé (insensible aux accents, côté applicatif).
	Search(ctx context.Context, namePattern string, limit int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
