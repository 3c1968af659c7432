package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darkom-tn/darkom-api/internal/domain/order"
)

func TestCanTransition_CheminNominal(t *testing.T) {
	path := []order.Status{
		order.StatusNew, order.StatusPending, order.StatusValidated,
		order.StatusProcessing, order.StatusShipped, order.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, order.CanTransition(path[i], path[i+1]),
			"%s -> %s doit être autorisé", path[i], path[i+1])
	}
}

func TestCanTransition_AnnulationAvantExpedition(t *testing.T) {
	for _, from := range []order.Status{order.StatusNew, order.StatusPending, order.StatusValidated, order.StatusProcessing} {
		assert.True(t, order.CanTransition(from, order.StatusCancelled),
			"%s doit pouvoir être annulée", from)
	}
	// Une fois expédiée ou livrée, plus d'annulation.
	assert.False(t, order.CanTransition(order.StatusShipped, order.StatusCancelled))
	assert.False(t, order.CanTransition(order.StatusDelivered, order.StatusCancelled))
}

func TestCanTransition_EtatsTerminaux(t *testing.T) {
	for _, to := range []order.Status{
		order.StatusNew, order.StatusPending, order.StatusValidated,
		order.StatusProcessing, order.StatusShipped, order.StatusDelivered,
	} {
		assert.False(t, order.CanTransition(order.StatusCancelled, to), "cancelled est terminal")
		if to != order.StatusDelivered {
			assert.False(t, order.CanTransition(order.StatusDelivered, to), "delivered est terminal")
		}
	}
}

func TestCanTransition_PasDeRetourArriere(t *testing.T) {
	assert.False(t, order.CanTransition(order.StatusValidated, order.StatusNew))
	assert.False(t, order.CanTransition(order.StatusShipped, order.StatusProcessing))
	assert.False(t, order.CanTransition(order.StatusNew, order.StatusShipped),
		"pas de saut direct vers shipped")
}

func TestStatusValid(t *testing.T) {
	assert.True(t, order.StatusNew.Valid())
	assert.True(t, order.StatusDelivered.Valid())
	assert.False(t, order.Status("archived").Valid())
	assert.False(t, order.Status("").Valid())
}
