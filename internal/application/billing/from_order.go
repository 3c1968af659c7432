package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain"
	domainbilling "github.com/darkom-tn/darkom-api/internal/domain/billing"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// InvoiceFromOrderUseCase convertit une commande validée en document de
// facturation. Les prix stockés dans les lignes de commande sont TTC (prix
// boutique) : ils sont reconvertis en HT par division par 1.19 avant d'être
// posés comme lignes de facture. C'est le sens inverse de la saisie manuelle,
// où l'administrateur entre directement des prix HT.
type InvoiceFromOrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	timbreFiscal decimal.Decimal
}

// NewInvoiceFromOrderUseCase construit le cas d'usage.
func NewInvoiceFromOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	timbreFiscal decimal.Decimal,
) *InvoiceFromOrderUseCase {
	return &InvoiceFromOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		timbreFiscal: timbreFiscal,
	}
}

// Generate crée le document depuis la commande. Le client est recherché par
// téléphone ; s'il n'existe pas, il est créé depuis les champs de livraison de
// la commande (création paresseuse), dans la même transaction que la facture.
func (uc *InvoiceFromOrderUseCase) Generate(ctx context.Context, createdBy, orderID string, in dto.InvoiceFromOrderRequest) (*dto.InvoiceResponse, error) {
	docType := in.DocumentType
	if docType == "" {
		docType = entity.DocFacture
	}
	if docType != entity.DocFacture && docType != entity.DocDevis && docType != entity.DocBonLivraison {
		return nil, domain.ErrInvalidInput
	}

	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil || o == nil {
		return nil, domain.ErrNotFound
	}
	if o.Status != order.StatusValidated {
		return nil, domain.ErrOrderNotValidated
	}

	orderItems, err := uc.orderRepo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(orderItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Frontière TTC -> HT : seule conversion de base fiscale du code.
	lines := make([]domainbilling.Line, 0, len(orderItems))
	for _, it := range orderItems {
		lines = append(lines, domainbilling.Line{
			Description: it.ProductName,
			Quantity:    decimal.NewFromInt(int64(it.Quantity)),
			UnitPriceHT: domainbilling.HTFromTTC(it.Price),
		})
	}
	breakdown := domainbilling.ComputeFromHT(lines, uc.timbreFiscal)

	now := time.Now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		Date:         now,
		DocumentType: docType,
		SubtotalHT:   breakdown.SubtotalHT,
		TVA:          breakdown.TVA,
		TimbreFiscal: breakdown.TimbreFiscal,
		TotalTTC:     breakdown.TotalTTC,
		Notes:        in.Notes,
		OrderID:      &o.ID,
		CreatedBy:    createdBy,
		CreatedAt:    now,
	}
	items := make([]*entity.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPriceHT,
			Total:       l.Total(),
		})
	}

	var customer *entity.Customer
	err = uc.txRunner.RunBilling(ctx, func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Revérifie le statut dans la transaction : une annulation concurrente
		// entre la lecture initiale et le commit ne doit pas produire de facture.
		current, err := orderRepo.GetByID(ctx, o.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != order.StatusValidated {
			return domain.ErrOrderNotValidated
		}

		// Création paresseuse du client depuis les champs de livraison.
		existing, err := customerRepo.GetByPhone(ctx, o.CustomerPhone)
		if err != nil {
			return err
		}
		if existing != nil {
			customer = existing
		} else {
			customer = &entity.Customer{
				ID:        uuid.New().String(),
				Name:      o.CustomerName,
				Address:   o.CustomerAddress,
				Phone:     o.CustomerPhone,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := customerRepo.Create(ctx, customer); err != nil {
				return err
			}
		}
		inv.CustomerID = customer.ID

		seq, err := invoiceRepo.NextSequence(ctx, docType, now)
		if err != nil {
			return err
		}
		inv.Number = domainbilling.FormatNumber(docType, now, seq)

		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, customer.Name, items), nil
}
