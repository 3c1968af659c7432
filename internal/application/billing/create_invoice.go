// Package billing porte les cas d'usage de facturation : saisie manuelle,
// dérivation depuis une commande validée, rendu PDF et gestion des clients.
//
// Convention : les montants internes sont HT ; la conversion TTC -> HT ne se
// fait qu'à la frontière commande -> facture (voir domain/billing).
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
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// CreateInvoiceUseCase crée un document de facturation saisi manuellement :
// l'administrateur renseigne directement les prix unitaires HT.
type CreateInvoiceUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
	timbreFiscal decimal.Decimal
}

// NewCreateInvoiceUseCase construit le cas d'usage. timbreFiscal vient de la
// configuration : une seule valeur pour toute l'application.
func NewCreateInvoiceUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	timbreFiscal decimal.Decimal,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		timbreFiscal: timbreFiscal,
	}
}

// Create valide la saisie, calcule la décomposition fiscale et persiste
// en-tête et lignes dans une transaction.
func (uc *CreateInvoiceUseCase) Create(ctx context.Context, createdBy string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	docType := in.DocumentType
	if docType == "" {
		docType = entity.DocFacture
	}
	if docType != entity.DocFacture && docType != entity.DocDevis && docType != entity.DocBonLivraison {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]domainbilling.Line, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Description == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitPriceHT.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, domainbilling.Line{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPriceHT: item.UnitPriceHT,
		})
	}

	breakdown := domainbilling.ComputeFromHT(lines, uc.timbreFiscal)
	now := time.Now()

	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		Date:         now,
		DocumentType: docType,
		SubtotalHT:   breakdown.SubtotalHT,
		TVA:          breakdown.TVA,
		TimbreFiscal: breakdown.TimbreFiscal,
		TotalTTC:     breakdown.TotalTTC,
		Notes:        in.Notes,
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

	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		_ repository.OrderRepository,
	) error {
		// Numéro attribué dans la transaction pour garder la séquence mensuelle dense.
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

// GetInvoice retourne un document complet par id.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(ctx, inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName, items), nil
}

// List retourne les documents, les plus récents d'abord.
func (uc *CreateInvoiceUseCase) List(ctx context.Context, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.invoiceRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv, "", nil))
	}
	return out, nil
}

// toInvoiceResponse projette l'entité en DTO. Arrondi d'affichage : 3 décimales
// (millimes TND), appliqué ici seulement, jamais pendant le calcul.
func toInvoiceResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: customerName,
		Date:         inv.Date.Format("2006-01-02"),
		DocumentType: inv.DocumentType,
		SubtotalHT:   inv.SubtotalHT.Round(domainbilling.DisplayScale),
		TVA:          inv.TVA.Round(domainbilling.DisplayScale),
		TimbreFiscal: inv.TimbreFiscal.Round(domainbilling.DisplayScale),
		TotalTTC:     inv.TotalTTC.Round(domainbilling.DisplayScale),
		Notes:        inv.Notes,
		Items:        make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	if inv.OrderID != nil {
		resp.OrderID = *inv.OrderID
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPriceHT: it.UnitPrice.Round(domainbilling.DisplayScale),
			Total:       it.Total.Round(domainbilling.DisplayScale),
		})
	}
	return resp
}
