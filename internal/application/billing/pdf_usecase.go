package billing

import (
	"context"
	"fmt"

	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// PDFUseCase produit le PDF téléchargeable d'un document de facturation.
// Fonction de rendu pure sur des données déjà persistées : aucune écriture.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
	seller       SellerInfo
}

// NewPDFUseCase construit le cas d'usage.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
	seller SellerInfo,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		generator:    generator,
		seller:       seller,
	}
}

// DownloadInvoicePDF charge le document et ses données liées puis génère le PDF.
//
// Retourne :
//   - (pdfBytes, filename, nil) en cas de succès ;
//   - domain.ErrNotFound si le document ou son client manquent (échec bruyant,
//     aucun fichier partiel n'est produit).
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger le document: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger le client: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("%w: client du document introuvable", domain.ErrNotFound)
	}

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: charger les lignes: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, items, uc.seller)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: génération échouée: %w", err)
	}

	// Fichier nommé d'après le numéro du document.
	filename = fmt.Sprintf("%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
