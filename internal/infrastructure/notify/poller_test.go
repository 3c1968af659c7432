package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkom-tn/darkom-api/internal/domain/repository"
	"github.com/darkom-tn/darkom-api/internal/infrastructure/notify"
)

type fakeOutboxRepo struct {
	events []*repository.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *repository.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) GetUnprocessed(_ context.Context, limit int) ([]*repository.OutboxEvent, error) {
	var out []*repository.OutboxEvent
	for _, e := range r.events {
		if e.ProcessedAt == nil {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *fakeOutboxRepo) MarkProcessed(_ context.Context, id string) error {
	now := time.Now()
	for _, e := range r.events {
		if e.ID == id {
			e.ProcessedAt = &now
		}
	}
	return nil
}

type fakeSender struct {
	sent    []string
	failIDs map[string]bool
}

func (s *fakeSender) Send(_ context.Context, e *repository.OutboxEvent) error {
	if s.failIDs[e.ID] {
		return errors.New("smtp indisponible")
	}
	s.sent = append(s.sent, e.ID)
	return nil
}

func event(id string) *repository.OutboxEvent {
	payload, _ := json.Marshal(map[string]string{"order_id": id})
	return &repository.OutboxEvent{
		ID:          id,
		EventType:   repository.EventOrderPlaced,
		AggregateID: id,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}
}

func TestDispatch_MarqueApresEnvoi(t *testing.T) {
	repo := &fakeOutboxRepo{events: []*repository.OutboxEvent{event("e1"), event("e2")}}
	sender := &fakeSender{}
	p := notify.NewPoller(repo, sender, time.Second, 10, zerolog.Nop())

	p.Dispatch(context.Background())

	assert.Equal(t, []string{"e1", "e2"}, sender.sent)
	for _, e := range repo.events {
		assert.NotNil(t, e.ProcessedAt, "événement %s marqué traité", e.ID)
	}
}

// Un échec d'envoi laisse l'événement en place et n'arrête pas le lot ;
// au tour suivant il est renvoyé (at-least-once).
func TestDispatch_EchecRepriseAuTourSuivant(t *testing.T) {
	repo := &fakeOutboxRepo{events: []*repository.OutboxEvent{event("e1"), event("e2")}}
	sender := &fakeSender{failIDs: map[string]bool{"e1": true}}
	p := notify.NewPoller(repo, sender, time.Second, 10, zerolog.Nop())
	ctx := context.Background()

	p.Dispatch(ctx)
	assert.Equal(t, []string{"e2"}, sender.sent, "e2 envoyé malgré l'échec de e1")
	assert.Nil(t, repo.events[0].ProcessedAt, "e1 reste en attente")

	// L'incident SMTP est résolu : e1 part au tour suivant, e2 n'est pas renvoyé.
	sender.failIDs = nil
	p.Dispatch(ctx)
	assert.Equal(t, []string{"e2", "e1"}, sender.sent)
	assert.NotNil(t, repo.events[0].ProcessedAt)
}

func TestRun_SArreteSurAnnulation(t *testing.T) {
	repo := &fakeOutboxRepo{events: []*repository.OutboxEvent{event("e1")}}
	sender := &fakeSender{}
	p := notify.NewPoller(repo, sender, 10*time.Millisecond, 10, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(sender.sent) > 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("le poller ne s'est pas arrêté après annulation du contexte")
	}
}
