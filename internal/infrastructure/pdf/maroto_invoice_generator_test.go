package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkom-tn/darkom-api/internal/application/billing"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/infrastructure/pdf"
)

func sampleInvoice(docType string) (*entity.Invoice, *entity.Customer, []*entity.InvoiceItem) {
	inv := &entity.Invoice{
		ID:           "inv-1",
		Number:       "FACT-202508-007",
		CustomerID:   "cust-1",
		Date:         time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		DocumentType: docType,
		SubtotalHT:   decimal.RequireFromString("200"),
		TVA:          decimal.RequireFromString("38"),
		TimbreFiscal: decimal.RequireFromString("1.000"),
		TotalTTC:     decimal.RequireFromString("239"),
		Notes:        "Paiement à 30 jours",
	}
	customer := &entity.Customer{
		ID:      "cust-1",
		Name:    "Société Carthage SARL",
		Address: "Zone industrielle, Mégrine",
		Phone:   "71123456",
	}
	items := []*entity.InvoiceItem{
		{ID: "it-1", InvoiceID: "inv-1", Description: "Installation caméra", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100"), Total: decimal.RequireFromString("100")},
		{ID: "it-2", InvoiceID: "inv-1", Description: "Détecteur de mouvement", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("50"), Total: decimal.RequireFromString("100")},
	}
	return inv, customer, items
}

func TestGenerateInvoicePDF(t *testing.T) {
	gen := pdf.NewMarotoInvoiceGenerator()
	seller := billing.SellerInfo{
		Name:    "Darkom Smart Home",
		Address: "Avenue de la Liberté, Tunis",
		Phone:   "71000000",
		Email:   "contact@darkom.tn",
		TaxID:   "1234567/A/M/000",
	}

	// Les trois types de document se rendent sans erreur.
	for _, docType := range []string{entity.DocFacture, entity.DocDevis, entity.DocBonLivraison} {
		t.Run(docType, func(t *testing.T) {
			inv, customer, items := sampleInvoice(docType)
			got, err := gen.GenerateInvoicePDF(context.Background(), inv, customer, items, seller)
			require.NoError(t, err)
			require.NotEmpty(t, got)
			assert.Equal(t, "%PDF", string(got[:4]))
		})
	}
}

// Un type inconnu retombe sur l'accent facture plutôt que de planter.
func TestGenerateInvoicePDF_TypeInconnu(t *testing.T) {
	gen := pdf.NewMarotoInvoiceGenerator()
	inv, customer, items := sampleInvoice("autre")

	got, err := gen.GenerateInvoicePDF(context.Background(), inv, customer, items, billing.SellerInfo{Name: "Darkom"})
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
