package orders_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/application/orders"
	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
)

type fakeOrderRepo struct {
	orders []*entity.Order
	items  []*entity.OrderItem
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders = append(r.orders, o)
	return nil
}
func (r *fakeOrderRepo) CreateItems(_ context.Context, items []*entity.OrderItem) error {
	r.items = append(r.items, items...)
	return nil
}
func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) GetItemsByOrderID(_ context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) List(_ context.Context, status order.Status, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
		}
	}
	return nil
}

func seed(repo *fakeOrderRepo, id string, status order.Status) *entity.Order {
	o := &entity.Order{
		ID:            id,
		CustomerName:  "Ahmed Ben Salah",
		CustomerPhone: "21650123",
		TotalAmount:   decimal.RequireFromString("189.000"),
		Status:        status,
	}
	repo.orders = append(repo.orders, o)
	return o
}

func TestUpdateStatus_TransitionsAutorisees(t *testing.T) {
	repo := &fakeOrderRepo{}
	seed(repo, "ord-1", order.StatusNew)
	uc := orders.NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	// Cycle nominal complet.
	for _, next := range []order.Status{
		order.StatusPending, order.StatusValidated, order.StatusProcessing,
		order.StatusShipped, order.StatusDelivered,
	} {
		resp, err := uc.UpdateStatus(ctx, "ord-1", dto.UpdateOrderStatusRequest{Status: string(next)})
		require.NoError(t, err, "transition vers %s", next)
		assert.Equal(t, string(next), resp.Status)
	}
}

func TestUpdateStatus_TransitionInterdite(t *testing.T) {
	repo := &fakeOrderRepo{}
	seed(repo, "ord-1", order.StatusNew)
	uc := orders.NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	// Sauter des étapes est interdit.
	_, err := uc.UpdateStatus(ctx, "ord-1", dto.UpdateOrderStatusRequest{Status: string(order.StatusShipped)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// La commande n'a pas bougé.
	got, err := uc.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusNew), got.Status)

	// Statut inconnu : erreur d'entrée, pas de conflit.
	_, err = uc.UpdateStatus(ctx, "ord-1", dto.UpdateOrderStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_EtatTerminal(t *testing.T) {
	repo := &fakeOrderRepo{}
	seed(repo, "ord-1", order.StatusDelivered)
	seed(repo, "ord-2", order.StatusCancelled)
	uc := orders.NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.UpdateStatus(ctx, "ord-1", dto.UpdateOrderStatusRequest{Status: string(order.StatusCancelled)})
	assert.ErrorIs(t, err, domain.ErrConflict, "livrée est terminale")

	_, err = uc.UpdateStatus(ctx, "ord-2", dto.UpdateOrderStatusRequest{Status: string(order.StatusNew)})
	assert.ErrorIs(t, err, domain.ErrConflict, "annulée est terminale")
}

func TestListEtGet(t *testing.T) {
	repo := &fakeOrderRepo{}
	seed(repo, "ord-1", order.StatusNew)
	seed(repo, "ord-2", order.StatusValidated)
	repo.items = append(repo.items, &entity.OrderItem{
		ID: "oi-1", OrderID: "ord-2", ProductName: "Caméra IP",
		Price: decimal.RequireFromString("189.000"), Quantity: 1,
	})
	uc := orders.NewUseCase(repo, zerolog.Nop())
	ctx := context.Background()

	all, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	validated, err := uc.List(ctx, string(order.StatusValidated), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, validated, 1)
	assert.Equal(t, "ord-2", validated[0].ID)

	_, err = uc.List(ctx, "archived", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, "ord-2")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Caméra IP", got.Items[0].ProductName)

	_, err = uc.GetByID(ctx, "inconnu")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
