package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de document fiscal. Le libellé imprimé (et sa couleur sur le PDF)
// dépend du type ; la structure des montants est la même pour les trois.
const (
	DocFacture      = "facture"
	DocDevis        = "devis"
	DocBonLivraison = "bon_livraison"
)

// DocumentLabel retourne le libellé imprimable d'un type de document.
func DocumentLabel(docType string) string {
	switch docType {
	case DocDevis:
		return "Devis"
	case DocBonLivraison:
		return "Bon de Livraison"
	default:
		return "Facture"
	}
}

// Invoice représente l'en-tête d'un document de facturation.
// Tous les montants sont stockés en base HT ; TotalTTC = SubtotalHT + TVA + TimbreFiscal.
type Invoice struct {
	ID           string
	Number       string // format métier : FACT-YYYYMM-NNN (DEV-/BL- selon le type)
	CustomerID   string
	Date         time.Time
	DocumentType string // facture | devis | bon_livraison
	SubtotalHT   decimal.Decimal
	TVA          decimal.Decimal
	TimbreFiscal decimal.Decimal
	TotalTTC     decimal.Decimal
	Notes        string // message libre imprimé en pied de document
	OrderID      *string // commande d'origine, nil pour une saisie manuelle
	CreatedBy    string
	CreatedAt    time.Time
}

// InvoiceItem ligne de document. UnitPrice est HT ; Total = Quantity × UnitPrice.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
