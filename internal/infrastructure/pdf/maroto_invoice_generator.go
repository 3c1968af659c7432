// Package pdf implémente le rendu imprimable des documents de facturation
// (facture, devis, bon de livraison) au format A4.
//
// Mise en page :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER : Vendeur + MF  │  Type + N° document + Date        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT : Nom / Adresse / Tél                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE : Description | Qté | PU HT | TVA/u | PU TTC | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX : Total HT / TVA 19% / Timbre fiscal / Total TTC     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER : mentions + contact                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/darkom-tn/darkom-api/internal/application/billing"
	domainbilling "github.com/darkom-tn/darkom-api/internal/domain/billing"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight = &props.Color{Red: 240, Green: 240, Blue: 240}

	// Une couleur d'accent par type de document : le personnel distingue une
	// facture d'un devis d'un coup d'œil dans une pile d'impressions.
	accentByType = map[string]*props.Color{
		entity.DocFacture:      {Red: 0, Green: 70, Blue: 127},  // bleu
		entity.DocDevis:        {Red: 190, Green: 120, Blue: 0}, // ambre
		entity.DocBonLivraison: {Red: 0, Green: 110, Blue: 60},  // vert
	}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

// MarotoInvoiceGenerator implémente billing.InvoicePDFGenerator avec Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator construit le générateur.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF génère le PDF et retourne ses octets.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
	items []*entity.InvoiceItem,
	seller appbilling.SellerInfo,
) ([]byte, error) {
	accent := accentByType[invoice.DocumentType]
	if accent == nil {
		accent = accentByType[entity.DocFacture]
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(invoice.Number, true).
		WithAuthor(seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, seller, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(customerRow(customer, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(accent))
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, accent))

	if invoice.Notes != "" {
		m.AddRows(notesRow(invoice.Notes))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(seller))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer le document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow : vendeur + matricule fiscal (gauche), type + numéro + date (droite).
func headerRow(invoice *entity.Invoice, seller appbilling.SellerInfo, accent *props.Color) core.Row {
	date := invoice.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: accent, Top: 1,
			}),
			text.New("MF : "+nonEmpty(seller.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(entity.DocumentLabel(invoice.DocumentType)), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: accent, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow : bloc client.
func customerRow(customer *entity.Customer, accent *props.Color) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: accent, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Adresse : %s   |   Tél : %s",
				nonEmpty(customer.Address, "—"),
				nonEmpty(customer.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow : en-tête de la table des lignes.
func tableHeaderRow(accent *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: accent, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("Qté", 1, align.Center),
		h("P.U. HT", 2, align.Right),
		h("TVA/u", 1, align.Right),
		h("P.U. TTC", 2, align.Right),
		h("Total TTC", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

// tableItemRows : une ligne par article. Les montants stockés sont HT ; la TVA
// unitaire et les montants TTC sont dérivés au rendu, millimes partout.
func tableItemRows(items []*entity.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		unitTTC := domainbilling.TTCFromHT(it.UnitPrice)
		result = append(result, row.New(7).Add(
			cell(it.Description, 4, align.Left),
			cell(formatQuantity(it.Quantity), 1, align.Center),
			cell(formatAmount(it.UnitPrice), 2, align.Right),
			cell(formatAmount(it.UnitPrice.Mul(domainbilling.TVARate)), 1, align.Right),
			cell(formatAmount(unitTTC), 2, align.Right),
			cell(formatAmount(it.Quantity.Mul(unitTTC)), 2, align.Right),
		))
	}
	return result
}

// totalsRow : décomposition fiscale alignée à droite.
func totalsRow(invoice *entity.Invoice, accent *props.Color) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: accent, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: accent, Right: 1,
		})
	}

	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label("Total HT :"),
			label("TVA 19% :"),
			label("Timbre fiscal :"),
			grandLabel("TOTAL TTC :"),
		),
		col.New(4).Add(
			value(formatAmount(invoice.SubtotalHT)+" DT"),
			value(formatAmount(invoice.TVA)+" DT"),
			value(formatAmount(invoice.TimbreFiscal)+" DT"),
			grandValue(formatAmount(invoice.TotalTTC)+" DT"),
		),
	)
}

// notesRow : notes libres de l'émetteur.
func notesRow(notes string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Notes : "+notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

// footerRow : coordonnées du vendeur.
func footerRow(seller appbilling.SellerInfo) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Merci de votre confiance.", props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: colorGray,
		}),
		text.New(fmt.Sprintf("%s   |   %s   |   %s",
			nonEmpty(seller.Address, "—"),
			nonEmpty(seller.Phone, "—"),
			nonEmpty(seller.Email, "—"),
		), props.Text{Size: 7, Align: align.Center, Top: 6, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatAmount imprime un montant en dinars avec 3 décimales (millimes).
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(3)
}

// formatQuantity imprime une quantité sans décimales inutiles.
func formatQuantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.StringFixed(0)
	}
	return q.String()
}
