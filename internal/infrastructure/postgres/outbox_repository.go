package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo implémentation de OutboxRepository (utilisable avec pool ou tx).
// L'événement est écrit dans la transaction métier ; le dispatcher le relit
// hors transaction et le marque traité après envoi réussi.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

// Create persiste l'événement.
func (r *OutboxRepo) Create(ctx context.Context, e *repository.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, e.ID, e.EventType, e.AggregateID, e.Payload, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// GetUnprocessed retourne les événements non traités, les plus anciens d'abord.
// En autocommit les verrous FOR UPDATE SKIP LOCKED ne durent que le temps du
// SELECT : aucune exclusion entre instances une fois la lecture terminée. Le
// contrat reste at-least-once, un duplicata d'envoi est acceptable.
func (r *OutboxRepo) GetUnprocessed(ctx context.Context, limit int) ([]*repository.OutboxEvent, error) {
	query := `
		SELECT id, event_type, aggregate_id, payload, created_at, processed_at
		FROM outbox_events
		WHERE processed_at IS NULL
		ORDER BY created_at LIMIT $1
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list outbox events: %w", err)
	}
	defer rows.Close()
	var list []*repository.OutboxEvent
	for rows.Next() {
		var e repository.OutboxEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.AggregateID, &e.Payload, &e.CreatedAt, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// MarkProcessed horodate le traitement. Jamais appelé si l'envoi a échoué :
// l'événement sera repris au prochain tour.
func (r *OutboxRepo) MarkProcessed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE outbox_events SET processed_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("mark outbox event processed: %w", err)
	}
	return nil
}
