package repository

import (
	"context"
	"time"

	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// InvoiceRepository définit le port de persistance des documents de facturation.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// NextSequence retourne le prochain rang mensuel pour la numérotation
	// PREFIX-YYYYMM-NNN (compte des documents du même type sur le mois + 1).
	NextSequence(ctx context.Context, docType string, date time.Time) (int, error)
}
