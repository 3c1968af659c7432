package checkout

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// TxRunner exécute fn dans une transaction regroupant commandes et outbox.
// Commande, lignes et événement de notification sont validés ensemble : en cas
// d'échec de n'importe quelle étape, rien n'est écrit (pas de commande orpheline).
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		outboxRepo repository.OutboxRepository,
	) error) error
}
