package repository

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
)

// OrderRepository définit le port de persistance des commandes.
// Create et CreateItems sont appelés dans la même transaction au checkout :
// pas de commande orpheline, pas de lignes sans en-tête.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	// CreateItems insère toutes les lignes en un seul batch lié à la commande.
	CreateItems(ctx context.Context, items []*entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetItemsByOrderID(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// List filtre optionnellement par statut ("" = tous), tri created_at décroissant.
	List(ctx context.Context, status order.Status, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
}
