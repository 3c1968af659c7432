// Package cart tient le panier des visiteurs côté serveur : une collection de
// lignes produit/quantité par session, avec totaux dérivés.
//
// Le store est un objet injectable (pas d'état global) : cache en mémoire
// protégé par RWMutex, instantané sérialisé vers le repository à chaque
// mutation pour survivre aux redémarrages. Chaque opération retourne un
// instantané détaché du panier, jamais l'état interne : les appelants peuvent
// le lire sans verrou pendant que d'autres requêtes mutent la même session.
// Les mutations elles-mêmes ne peuvent pas échouer : une erreur de
// persistance est journalisée et avalée, le panier en mémoire reste l'état
// de référence de la session.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// Store panier multi-sessions avec frontière de sérialisation explicite.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*entity.Cart
	repo  repository.CartRepository
	log   zerolog.Logger
}

// NewStore construit le store. repo peut être nil (panier purement volatil, tests).
func NewStore(repo repository.CartRepository, log zerolog.Logger) *Store {
	return &Store{
		carts: make(map[string]*entity.Cart),
		repo:  repo,
		log:   log,
	}
}

// Get retourne un instantané du panier de la session, restauré depuis le
// stockage durable si nécessaire. Une session inconnue donne un panier vide.
func (s *Store) Get(ctx context.Context, sessionID string) *entity.Cart {
	c := s.live(ctx, sessionID)
	s.mu.RLock()
	snap := snapshotOf(c)
	s.mu.RUnlock()
	return snap
}

// live retourne l'entrée interne de la session, à ne lire ou muter que sous
// le verrou du store.
func (s *Store) live(ctx context.Context, sessionID string) *entity.Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	if s.repo != nil {
		if saved, err := s.repo.Load(ctx, sessionID); err != nil {
			s.log.Warn().Err(err).Str("session", sessionID).Msg("restauration du panier impossible")
		} else if saved != nil {
			s.mu.Lock()
			// Une autre goroutine a pu restaurer entre temps ; elle gagne.
			if existing, ok := s.carts[sessionID]; ok {
				s.mu.Unlock()
				return existing
			}
			s.carts[sessionID] = saved
			s.mu.Unlock()
			return saved
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.carts[sessionID]; ok {
		return existing
	}
	c = &entity.Cart{SessionID: sessionID, UpdatedAt: time.Now()}
	s.carts[sessionID] = c
	return c
}

// AddItem ajoute le produit au panier : fusion sur l'id produit (quantité
// incrémentée), sinon nouvelle ligne. qty <= 0 est traité comme 1.
func (s *Store) AddItem(ctx context.Context, sessionID string, product *entity.Product, qty int) *entity.Cart {
	if qty <= 0 {
		qty = 1
	}
	c := s.live(ctx, sessionID)

	s.mu.Lock()
	merged := false
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, entity.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  qty,
		})
	}
	c.UpdatedAt = time.Now()
	snap := snapshotOf(c)
	s.mu.Unlock()

	s.persist(ctx, snap)
	return snap
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité <= 0 supprime la
// ligne : après toute mise à jour réussie, chaque ligne restante a qty >= 1.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, qty int) *entity.Cart {
	c := s.live(ctx, sessionID)

	s.mu.Lock()
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = qty
			}
			c.UpdatedAt = time.Now()
			break
		}
	}
	snap := snapshotOf(c)
	s.mu.Unlock()

	s.persist(ctx, snap)
	return snap
}

// RemoveItem supprime la ligne quelle que soit sa quantité.
func (s *Store) RemoveItem(ctx context.Context, sessionID, productID string) *entity.Cart {
	return s.UpdateQuantity(ctx, sessionID, productID, 0)
}

// Clear vide le panier (après checkout réussi ou action explicite).
func (s *Store) Clear(ctx context.Context, sessionID string) {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			s.log.Warn().Err(err).Str("session", sessionID).Msg("purge du panier persisté impossible")
		}
	}
}

// snapshotOf copie le panier pour le rendre lisible hors verrou. Appelant
// responsable de tenir le verrou du store pendant la copie.
func snapshotOf(c *entity.Cart) *entity.Cart {
	return &entity.Cart{
		SessionID: c.SessionID,
		Items:     append([]entity.CartItem(nil), c.Items...),
		UpdatedAt: c.UpdatedAt,
	}
}

// persist pousse l'instantané (déjà détaché) vers le stockage durable.
// Dernier écrivain gagnant entre onglets ; l'échec n'invalide pas la
// mutation en mémoire.
func (s *Store) persist(ctx context.Context, snap *entity.Cart) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		s.log.Warn().Err(err).Str("session", snap.SessionID).Msg("persistance du panier impossible")
	}
}
