package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkom-tn/darkom-api/internal/application/cart"
	"github.com/darkom-tn/darkom-api/internal/application/checkout"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doublures : repos en mémoire derrière un TxRunner simulant commit/rollback.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders     []*entity.Order
	items      []*entity.OrderItem
	failCreate bool
	failItems  bool
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	if r.failCreate {
		return errors.New("insert order: connexion perdue")
	}
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) CreateItems(_ context.Context, items []*entity.OrderItem) error {
	if r.failItems {
		return errors.New("insert order items: connexion perdue")
	}
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeOrderRepo) GetByID(context.Context, string) (*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) GetItemsByOrderID(context.Context, string) ([]*entity.OrderItem, error) {
	return nil, nil
}
func (r *fakeOrderRepo) List(context.Context, order.Status, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) UpdateStatus(context.Context, string, order.Status) error { return nil }

type fakeOutboxRepo struct {
	events []*repository.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *repository.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}
func (r *fakeOutboxRepo) GetUnprocessed(context.Context, int) ([]*repository.OutboxEvent, error) {
	return nil, nil
}
func (r *fakeOutboxRepo) MarkProcessed(context.Context, string) error { return nil }

// fakeTxRunner rejoue la sémantique transactionnelle : si fn échoue, les
// écritures accumulées sont défaites.
type fakeTxRunner struct {
	orderRepo  *fakeOrderRepo
	outboxRepo *fakeOutboxRepo
}

func (r *fakeTxRunner) RunCheckout(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	savedOrders := len(r.orderRepo.orders)
	savedItems := len(r.orderRepo.items)
	savedEvents := len(r.outboxRepo.events)
	if err := fn(r.orderRepo, r.outboxRepo); err != nil {
		r.orderRepo.orders = r.orderRepo.orders[:savedOrders]
		r.orderRepo.items = r.orderRepo.items[:savedItems]
		r.outboxRepo.events = r.outboxRepo.events[:savedEvents]
		return err
	}
	return nil
}

func validRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		CustomerName:    "Ahmed Ben Salah",
		CustomerPhone:   "21650123",
		CustomerAddress: "12 avenue Habib Bourguiba, Tunis",
	}
}

func setup() (*cart.Store, *checkout.UseCase, *fakeOrderRepo, *fakeOutboxRepo) {
	store := cart.NewStore(nil, zerolog.Nop())
	orderRepo := &fakeOrderRepo{}
	outboxRepo := &fakeOutboxRepo{}
	uc := checkout.NewUseCase(store, &fakeTxRunner{orderRepo: orderRepo, outboxRepo: outboxRepo})
	return store, uc, orderRepo, outboxRepo
}

func product(id, name, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Scénarios
// ──────────────────────────────────────────────────────────────────────────────

// Chemin nominal : 2 produits (qté 1 et 3) + formulaire valide = 1 commande dont
// total_amount égale le total du panier, et 2 lignes dont Σ(prix × qté) le retrouve.
func TestSubmit_CheminNominal(t *testing.T) {
	store, uc, orderRepo, outboxRepo := setup()
	ctx := context.Background()

	store.AddItem(ctx, "sess", product("p1", "Caméra IP", "189.000"), 1)
	store.AddItem(ctx, "sess", product("p2", "Ampoule connectée", "35.500"), 3)
	cartTotal := store.Get(ctx, "sess").TotalAmount()

	resp, err := uc.Submit(ctx, "sess", "", validRequest())
	require.NoError(t, err)

	require.Len(t, orderRepo.orders, 1, "exactement une commande")
	o := orderRepo.orders[0]
	assert.True(t, o.TotalAmount.Equal(cartTotal), "total_amount = total du panier au moment de la soumission")
	assert.Equal(t, order.StatusNew, o.Status)
	assert.Nil(t, o.UserID, "checkout anonyme : user_id nul")

	require.Len(t, orderRepo.items, 2, "exactement deux lignes")
	sum := decimal.Zero
	for _, it := range orderRepo.items {
		assert.Equal(t, o.ID, it.OrderID)
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, sum.Equal(cartTotal), "Σ(prix × qté) des lignes = total de la commande")

	// Notification enregistrée dans la même transaction.
	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, repository.EventOrderPlaced, outboxRepo.events[0].EventType)
	assert.Equal(t, o.ID, outboxRepo.events[0].AggregateID)

	// Panier vidé après succès.
	assert.Empty(t, store.Get(ctx, "sess").Items)
	assert.Equal(t, o.ID, resp.OrderID)
}

func TestSubmit_UtilisateurConnecte(t *testing.T) {
	store, uc, orderRepo, _ := setup()
	ctx := context.Background()
	store.AddItem(ctx, "sess", product("p1", "Hub", "99.000"), 1)

	_, err := uc.Submit(ctx, "sess", "user-42", validRequest())
	require.NoError(t, err)
	require.NotNil(t, orderRepo.orders[0].UserID)
	assert.Equal(t, "user-42", *orderRepo.orders[0].UserID)
}

// Panier vide : rejet avant tout appel distant, aucune commande créée.
func TestSubmit_PanierVide(t *testing.T) {
	_, uc, orderRepo, outboxRepo := setup()

	_, err := uc.Submit(context.Background(), "sess", "", validRequest())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, outboxRepo.events)
}

// Validation : messages par champ, aucune écriture.
func TestSubmit_ValidationChamps(t *testing.T) {
	store, uc, orderRepo, _ := setup()
	ctx := context.Background()
	store.AddItem(ctx, "sess", product("p1", "Capteur", "10.000"), 1)

	cases := []struct {
		name  string
		in    dto.CheckoutRequest
		field string
	}{
		{"nom trop court", dto.CheckoutRequest{CustomerName: "Al", CustomerPhone: "21650123", CustomerAddress: "12 avenue Habib Bourguiba"}, "customer_name"},
		{"téléphone trop court", dto.CheckoutRequest{CustomerName: "Ahmed Ben Salah", CustomerPhone: "2165", CustomerAddress: "12 avenue Habib Bourguiba"}, "customer_phone"},
		{"adresse trop courte", dto.CheckoutRequest{CustomerName: "Ahmed Ben Salah", CustomerPhone: "21650123", CustomerAddress: "Tunis"}, "customer_address"},
		{"espaces seuls ignorés", dto.CheckoutRequest{CustomerName: "   A   ", CustomerPhone: "21650123", CustomerAddress: "12 avenue Habib Bourguiba"}, "customer_name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Submit(ctx, "sess", "", tc.in)
			var verr *checkout.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	assert.Empty(t, orderRepo.orders, "aucune écriture sur échec de validation")
	assert.Len(t, store.Get(ctx, "sess").Items, 1, "le panier est préservé")
}

// Échec d'insertion : rollback complet, panier préservé.
func TestSubmit_EchecInsertion_RollbackEtPanierPreserve(t *testing.T) {
	store, uc, orderRepo, outboxRepo := setup()
	ctx := context.Background()
	store.AddItem(ctx, "sess", product("p1", "Caméra", "189.000"), 2)

	orderRepo.failItems = true
	_, err := uc.Submit(ctx, "sess", "", validRequest())
	require.Error(t, err)

	assert.Empty(t, orderRepo.orders, "l'en-tête de commande est défait avec les lignes")
	assert.Empty(t, outboxRepo.events)
	assert.Len(t, store.Get(ctx, "sess").Items, 1, "le panier reste intact pour resoumettre")

	// La resoumission passe une fois l'incident résolu.
	orderRepo.failItems = false
	_, err = uc.Submit(ctx, "sess", "", validRequest())
	require.NoError(t, err)
	assert.Len(t, orderRepo.orders, 1)
}
