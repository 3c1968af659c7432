package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implémentation de OrderRepository (utilisable avec pool ou tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste l'en-tête de commande.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, total_amount, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerName, o.CustomerPhone, o.CustomerAddress,
		o.TotalAmount, string(o.Status), o.UserID, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItems insère toutes les lignes en un seul batch.
func (r *OrderRepo) CreateItems(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query, it.ID, it.OrderID, it.ProductID, it.ProductName, it.Price, it.Quantity)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
	}
	return nil
}

// GetByID retourne une commande par id, nil si absente.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_address, total_amount, status, user_id, created_at
		FROM orders WHERE id = $1`
	var o entity.Order
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.TotalAmount, &status, &o.UserID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Status = order.Status(status)
	return &o, nil
}

// GetItemsByOrderID retourne les lignes de la commande.
func (r *OrderRepo) GetItemsByOrderID(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, price, quantity
		FROM order_items WHERE order_id = $1 ORDER BY product_name`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List retourne les commandes, les plus récentes d'abord, filtrées par statut
// si fourni ("" = tous).
func (r *OrderRepo) List(ctx context.Context, status order.Status, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, customer_address, total_amount, status, user_id, created_at
		FROM orders
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var st string
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress, &o.TotalAmount, &st, &o.UserID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = order.Status(st)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// UpdateStatus change le statut. La légalité de la transition est vérifiée en
// amont par le cas d'usage.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	_, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
