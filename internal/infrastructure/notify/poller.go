package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// Poller relit périodiquement l'outbox et dispatche les événements en attente.
// Garantie at-least-once : un événement n'est marqué traité qu'après envoi
// réussi ; un échec le laisse en place pour le tick suivant.
type Poller struct {
	repo      repository.OutboxRepository
	sender    Sender
	tick      time.Duration
	batchSize int
	log       zerolog.Logger
}

// NewPoller construit le poller.
func NewPoller(repo repository.OutboxRepository, sender Sender, tick time.Duration, batchSize int, log zerolog.Logger) *Poller {
	if tick <= 0 {
		tick = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Poller{repo: repo, sender: sender, tick: tick, batchSize: batchSize, log: log}
}

// Run boucle jusqu'à annulation du contexte. À lancer dans une goroutine
// dédiée depuis main.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.Dispatch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Dispatch traite un lot d'événements en attente. Un échec d'envoi n'arrête
// pas le lot : les autres événements sont tentés quand même.
func (p *Poller) Dispatch(ctx context.Context) {
	events, err := p.repo.GetUnprocessed(ctx, p.batchSize)
	if err != nil {
		p.log.Error().Err(err).Msg("lecture de l'outbox impossible")
		return
	}

	for _, event := range events {
		if err := p.sender.Send(ctx, event); err != nil {
			p.log.Warn().Err(err).
				Str("event_id", event.ID).
				Str("event_type", event.EventType).
				Msg("envoi de la notification échoué, reprise au prochain tour")
			continue
		}
		if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
			// L'événement sera renvoyé : duplicata acceptable, perte non.
			p.log.Warn().Err(err).Str("event_id", event.ID).Msg("marquage de l'événement échoué")
			continue
		}
		p.log.Info().
			Str("event_id", event.ID).
			Str("aggregate_id", event.AggregateID).
			Msg("notification envoyée")
	}
}
