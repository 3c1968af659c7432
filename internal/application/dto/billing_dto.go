package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body pour POST /api/admin/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}

// CustomerResponse client en réponse.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
}

// CreateInvoiceRequest body pour POST /api/admin/invoices (saisie manuelle).
// Les prix unitaires saisis sont HT.
type CreateInvoiceRequest struct {
	CustomerID   string               `json:"customer_id"`
	DocumentType string               `json:"document_type"` // facture | devis | bon_livraison
	Notes        string               `json:"notes,omitempty"`
	Items        []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest ligne de document saisie par l'administrateur.
type InvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
}

// InvoiceFromOrderRequest body pour POST /api/admin/orders/:id/invoice.
type InvoiceFromOrderRequest struct {
	DocumentType string `json:"document_type,omitempty"` // défaut facture
	Notes        string `json:"notes,omitempty"`
}

// InvoiceItemResponse ligne de document en réponse (montants HT).
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse document complet. Montants arrondis à 3 décimales (millimes).
type InvoiceResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Date         string                `json:"date"`
	DocumentType string                `json:"document_type"`
	SubtotalHT   decimal.Decimal       `json:"subtotal_ht"`
	TVA          decimal.Decimal       `json:"tva"`
	TimbreFiscal decimal.Decimal       `json:"timbre_fiscal"`
	TotalTTC     decimal.Decimal       `json:"total_ttc"`
	Notes        string                `json:"notes,omitempty"`
	OrderID      string                `json:"order_id,omitempty"`
	Items        []InvoiceItemResponse `json:"items"`
}
