package billing

import (
	"context"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// TxRunner exécute fn dans une transaction regroupant clients, factures et
// commandes (la dérivation commande -> facture relit la commande dans la
// transaction pour écarter une annulation concurrente).
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// SellerInfo identité du vendeur imprimée sur les documents (depuis la config).
type SellerInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
	TaxID   string // matricule fiscal
}

// InvoicePDFGenerator port de rendu : prend un document déjà persisté et ses
// données liées, retourne les octets du PDF. Aucune écriture distante.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		items []*entity.InvoiceItem,
		seller SellerInfo,
	) ([]byte, error)
}
