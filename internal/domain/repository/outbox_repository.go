package repository

import (
	"context"
	"encoding/json"
	"time"
)

// Types d'événements outbox.
const (
	EventOrderPlaced = "order_placed"
)

// OutboxEvent notification en attente d'envoi. Écrit dans la transaction de
// checkout, relu par le dispatcher en arrière-plan (at-least-once : un envoi
// raté est retenté au tick suivant, jamais perdu avec la commande).
type OutboxEvent struct {
	ID          string
	EventType   string
	AggregateID string // id de la commande
	Payload     json.RawMessage
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OutboxRepository définit le port de la file de notifications.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) error
	GetUnprocessed(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string) error
}
