package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkom-tn/darkom-api/internal/application/billing"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doublures : repos en mémoire derrière un TxRunner simulant commit/rollback.
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers []*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers = append(r.customers, c)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(context.Context, int, int) ([]*entity.Customer, error) {
	return r.customers, nil
}
func (r *fakeCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }

type fakeInvoiceRepo struct {
	invoices   []*entity.Invoice
	items      []*entity.InvoiceItem
	failCreate bool
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if r.failCreate {
		return errors.New("insert invoice: connexion perdue")
	}
	r.invoices = append(r.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.items = append(r.items, item)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) List(context.Context, int, int) ([]*entity.Invoice, error) {
	return r.invoices, nil
}

// NextSequence recompte les documents du même type sur le mois, comme le repo SQL.
func (r *fakeInvoiceRepo) NextSequence(_ context.Context, docType string, date time.Time) (int, error) {
	n := 0
	for _, inv := range r.invoices {
		if inv.DocumentType == docType &&
			inv.Date.Year() == date.Year() && inv.Date.Month() == date.Month() {
			n++
		}
	}
	return n + 1, nil
}

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
func (r *fakeOrderRepo) List(context.Context, order.Status, int, int) ([]*entity.Order, error) {
	return r.orders, nil
}
func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
		}
	}
	return nil
}

// fakeTxRunner rejoue la sémantique transactionnelle : si fn échoue, les
// écritures accumulées sont défaites.
type fakeTxRunner struct {
	customerRepo *fakeCustomerRepo
	invoiceRepo  *fakeInvoiceRepo
	orderRepo    *fakeOrderRepo
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
) error) error {
	savedCustomers := len(r.customerRepo.customers)
	savedInvoices := len(r.invoiceRepo.invoices)
	savedItems := len(r.invoiceRepo.items)
	if err := fn(r.customerRepo, r.invoiceRepo, r.orderRepo); err != nil {
		r.customerRepo.customers = r.customerRepo.customers[:savedCustomers]
		r.invoiceRepo.invoices = r.invoiceRepo.invoices[:savedInvoices]
		r.invoiceRepo.items = r.invoiceRepo.items[:savedItems]
		return err
	}
	return nil
}

type fixture struct {
	customerRepo *fakeCustomerRepo
	invoiceRepo  *fakeInvoiceRepo
	orderRepo    *fakeOrderRepo
	txRunner     *fakeTxRunner
	timbre       decimal.Decimal
}

func newFixture() *fixture {
	f := &fixture{
		customerRepo: &fakeCustomerRepo{},
		invoiceRepo:  &fakeInvoiceRepo{},
		orderRepo:    &fakeOrderRepo{},
		timbre:       decimal.RequireFromString("1.000"),
	}
	f.txRunner = &fakeTxRunner{
		customerRepo: f.customerRepo,
		invoiceRepo:  f.invoiceRepo,
		orderRepo:    f.orderRepo,
	}
	return f
}

func (f *fixture) seedCustomer() *entity.Customer {
	c := &entity.Customer{ID: "cust-1", Name: "Société Carthage SARL", Phone: "71123456", Address: "Zone industrielle, Mégrine"}
	f.customerRepo.customers = append(f.customerRepo.customers, c)
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Saisie manuelle
// ──────────────────────────────────────────────────────────────────────────────

// Scénario de référence : 1 × 100 HT + 2 × 50 HT, timbre 1.000.
// HT 200, TVA 38, TTC 239.
func TestCreateInvoice_DecompositionFiscale(t *testing.T) {
	f := newFixture()
	f.seedCustomer()
	uc := billing.NewCreateInvoiceUseCase(f.txRunner, f.customerRepo, f.invoiceRepo, f.timbre)

	resp, err := uc.Create(context.Background(), "admin-1", dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items: []dto.InvoiceItemRequest{
			{Description: "Installation caméra", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.RequireFromString("100")},
			{Description: "Détecteur de mouvement", Quantity: decimal.NewFromInt(2), UnitPriceHT: decimal.RequireFromString("50")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "200", resp.SubtotalHT.String())
	assert.Equal(t, "38", resp.TVA.String())
	assert.Equal(t, "1", resp.TimbreFiscal.String())
	assert.Equal(t, "239", resp.TotalTTC.String())
	assert.Equal(t, entity.DocFacture, resp.DocumentType, "type par défaut")
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "100", resp.Items[0].Total.String())
	assert.Equal(t, "100", resp.Items[1].Total.String())
}

// La numérotation est mensuelle et par type : FACT, puis DEV repart à 001.
func TestCreateInvoice_NumerotationParTypeEtMois(t *testing.T) {
	f := newFixture()
	f.seedCustomer()
	uc := billing.NewCreateInvoiceUseCase(f.txRunner, f.customerRepo, f.invoiceRepo, f.timbre)
	ctx := context.Background()

	item := dto.InvoiceItemRequest{Description: "Prestation", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.NewFromInt(10)}
	prefix := time.Now().Format("200601")

	first, err := uc.Create(ctx, "admin-1", dto.CreateInvoiceRequest{CustomerID: "cust-1", Items: []dto.InvoiceItemRequest{item}})
	require.NoError(t, err)
	second, err := uc.Create(ctx, "admin-1", dto.CreateInvoiceRequest{CustomerID: "cust-1", Items: []dto.InvoiceItemRequest{item}})
	require.NoError(t, err)
	devis, err := uc.Create(ctx, "admin-1", dto.CreateInvoiceRequest{CustomerID: "cust-1", DocumentType: entity.DocDevis, Items: []dto.InvoiceItemRequest{item}})
	require.NoError(t, err)

	assert.Equal(t, "FACT-"+prefix+"-001", first.Number)
	assert.Equal(t, "FACT-"+prefix+"-002", second.Number)
	assert.Equal(t, "DEV-"+prefix+"-001", devis.Number, "séquence indépendante par type")
}

func TestCreateInvoice_Validation(t *testing.T) {
	f := newFixture()
	f.seedCustomer()
	uc := billing.NewCreateInvoiceUseCase(f.txRunner, f.customerRepo, f.invoiceRepo, f.timbre)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateInvoiceRequest
		want error
	}{
		{"client inconnu", dto.CreateInvoiceRequest{CustomerID: "inconnu", Items: []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.NewFromInt(1)}}}, domain.ErrNotFound},
		{"aucune ligne", dto.CreateInvoiceRequest{CustomerID: "cust-1"}, domain.ErrInvalidInput},
		{"quantité nulle", dto.CreateInvoiceRequest{CustomerID: "cust-1", Items: []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.Zero, UnitPriceHT: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
		{"prix négatif", dto.CreateInvoiceRequest{CustomerID: "cust-1", Items: []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.NewFromInt(-1)}}}, domain.ErrInvalidInput},
		{"type inconnu", dto.CreateInvoiceRequest{CustomerID: "cust-1", DocumentType: "avoir", Items: []dto.InvoiceItemRequest{{Description: "x", Quantity: decimal.NewFromInt(1), UnitPriceHT: decimal.NewFromInt(1)}}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, "admin-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.invoiceRepo.invoices, "aucune écriture sur échec de validation")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dérivation depuis une commande
// ──────────────────────────────────────────────────────────────────────────────

func seedValidatedOrder(f *fixture) *entity.Order {
	o := &entity.Order{
		ID:              "ord-1",
		CustomerName:    "Ahmed Ben Salah",
		CustomerPhone:   "21650123",
		CustomerAddress: "12 avenue Habib Bourguiba, Tunis",
		Status:          order.StatusValidated,
	}
	f.orderRepo.orders = append(f.orderRepo.orders, o)
	f.orderRepo.items = append(f.orderRepo.items,
		&entity.OrderItem{ID: "oi-1", OrderID: "ord-1", ProductName: "Prise connectée", Price: decimal.RequireFromString("11.90"), Quantity: 2},
	)
	return o
}

// Prix boutique 11.90 TTC -> 10.000 HT l'unité ; qté 2 donne HT 20.000,
// TVA 3.800, TTC 24.800 avec timbre 1.000.
func TestInvoiceFromOrder_ConversionTTCVersHT(t *testing.T) {
	f := newFixture()
	o := seedValidatedOrder(f)
	uc := billing.NewInvoiceFromOrderUseCase(f.txRunner, f.orderRepo, f.customerRepo, f.invoiceRepo, f.timbre)

	resp, err := uc.Generate(context.Background(), "admin-1", o.ID, dto.InvoiceFromOrderRequest{})
	require.NoError(t, err)

	assert.Equal(t, "20", resp.SubtotalHT.String())
	assert.Equal(t, "3.8", resp.TVA.String())
	assert.Equal(t, "24.8", resp.TotalTTC.String())
	assert.Equal(t, o.ID, resp.OrderID, "la facture référence la commande d'origine")
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "10", resp.Items[0].UnitPriceHT.String())
}

// Client absent : créé depuis les champs de livraison, dans la même transaction.
func TestInvoiceFromOrder_CreationParesseuseDuClient(t *testing.T) {
	f := newFixture()
	o := seedValidatedOrder(f)
	uc := billing.NewInvoiceFromOrderUseCase(f.txRunner, f.orderRepo, f.customerRepo, f.invoiceRepo, f.timbre)
	ctx := context.Background()

	resp, err := uc.Generate(ctx, "admin-1", o.ID, dto.InvoiceFromOrderRequest{})
	require.NoError(t, err)

	require.Len(t, f.customerRepo.customers, 1)
	created := f.customerRepo.customers[0]
	assert.Equal(t, o.CustomerName, created.Name)
	assert.Equal(t, o.CustomerPhone, created.Phone)
	assert.Equal(t, created.ID, resp.CustomerID)

	// Une deuxième dérivation retrouve le même client par téléphone.
	resp2, err := uc.Generate(ctx, "admin-1", o.ID, dto.InvoiceFromOrderRequest{DocumentType: entity.DocBonLivraison})
	require.NoError(t, err)
	assert.Len(t, f.customerRepo.customers, 1, "pas de doublon client")
	assert.Equal(t, created.ID, resp2.CustomerID)
}

// Seules les commandes validées sont facturables.
func TestInvoiceFromOrder_CommandeNonValidee(t *testing.T) {
	f := newFixture()
	o := seedValidatedOrder(f)
	o.Status = order.StatusNew
	uc := billing.NewInvoiceFromOrderUseCase(f.txRunner, f.orderRepo, f.customerRepo, f.invoiceRepo, f.timbre)

	_, err := uc.Generate(context.Background(), "admin-1", o.ID, dto.InvoiceFromOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderNotValidated)
	assert.Empty(t, f.invoiceRepo.invoices)
}

// Échec d'insertion de la facture : le client créé paresseusement est défait aussi.
func TestInvoiceFromOrder_RollbackComplet(t *testing.T) {
	f := newFixture()
	o := seedValidatedOrder(f)
	f.invoiceRepo.failCreate = true
	uc := billing.NewInvoiceFromOrderUseCase(f.txRunner, f.orderRepo, f.customerRepo, f.invoiceRepo, f.timbre)

	_, err := uc.Generate(context.Background(), "admin-1", o.ID, dto.InvoiceFromOrderRequest{})
	require.Error(t, err)
	assert.Empty(t, f.customerRepo.customers, "la création paresseuse du client est défaite")
	assert.Empty(t, f.invoiceRepo.invoices)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rendu PDF
// ──────────────────────────────────────────────────────────────────────────────

type fakePDFGenerator struct {
	called bool
	fail   bool
}

func (g *fakePDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	_ *entity.Invoice,
	_ *entity.Customer,
	_ []*entity.InvoiceItem,
	_ billing.SellerInfo,
) ([]byte, error) {
	g.called = true
	if g.fail {
		return nil, errors.New("rendu interrompu")
	}
	return []byte("%PDF-1.7 fake"), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture()
	f.seedCustomer()
	inv := &entity.Invoice{ID: "inv-1", Number: "FACT-202508-001", CustomerID: "cust-1", Date: time.Now(), DocumentType: entity.DocFacture}
	f.invoiceRepo.invoices = append(f.invoiceRepo.invoices, inv)

	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(f.invoiceRepo, f.customerRepo, gen, billing.SellerInfo{Name: "Darkom"})

	pdfBytes, filename, err := uc.DownloadInvoicePDF(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.True(t, gen.called)
	assert.NotEmpty(t, pdfBytes)
	assert.Equal(t, "FACT-202508-001.pdf", filename, "fichier nommé d'après le numéro")
}

// Document ou client manquant : échec net, le générateur n'est jamais appelé.
func TestDownloadInvoicePDF_DonneesManquantes(t *testing.T) {
	f := newFixture()
	inv := &entity.Invoice{ID: "inv-1", Number: "FACT-202508-001", CustomerID: "cust-absent", Date: time.Now()}
	f.invoiceRepo.invoices = append(f.invoiceRepo.invoices, inv)
	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(f.invoiceRepo, f.customerRepo, gen, billing.SellerInfo{})
	ctx := context.Background()

	_, _, err := uc.DownloadInvoicePDF(ctx, "inconnu")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.DownloadInvoicePDF(ctx, "inv-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "client introuvable")
	assert.False(t, gen.called, "pas de fichier partiel")
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerUseCase_CreateEtDoublonTelephone(t *testing.T) {
	f := newFixture()
	uc := billing.NewCustomerUseCase(f.customerRepo)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Société Carthage SARL", Phone: "71123456", Address: "Mégrine"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Autre", Phone: "71123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "", Phone: "5"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Société Carthage SARL", got.Name)
}
