package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo persiste l'instantané JSON du panier par session. Un upsert par
// mutation : dernier écrivain gagnant, l'état de référence reste le cache
// mémoire du store.
type CartRepo struct {
	q Querier
}

// NewCartRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Save écrase l'instantané de la session.
func (r *CartRepo) Save(ctx context.Context, cart *entity.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}
	query := `
		INSERT INTO carts (session_id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET items = $2, updated_at = $3`
	if _, err := r.q.Exec(ctx, query, cart.SessionID, items, cart.UpdatedAt); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Load restaure l'instantané, nil sans erreur si la session est inconnue.
func (r *CartRepo) Load(ctx context.Context, sessionID string) (*entity.Cart, error) {
	var raw []byte
	c := entity.Cart{SessionID: sessionID}
	err := r.q.QueryRow(ctx, `SELECT items, updated_at FROM carts WHERE session_id = $1`, sessionID).
		Scan(&raw, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := json.Unmarshal(raw, &c.Items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return &c, nil
}

// Delete purge l'instantané (checkout réussi ou vidage explicite).
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
