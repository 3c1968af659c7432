package repository

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// CartRepository frontière de sérialisation du panier : un instantané JSON par
// session, écrasé à chaque mutation (dernier écrivain gagnant, acceptable pour
// un panier mono-utilisateur).
type CartRepository interface {
	Save(ctx context.Context, cart *entity.Cart) error
	// Load retourne nil sans erreur si la session n'a pas de panier sauvegardé.
	Load(ctx context.Context, sessionID string) (*entity.Cart, error)
	Delete(ctx context.Context, sessionID string) error
}
