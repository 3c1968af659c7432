package dto

import "github.com/shopspring/decimal"

// CheckoutRequest body pour POST /api/checkout.
// Les champs de livraison sont validés avant toute écriture distante.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
}

// CheckoutResponse confirmation de commande.
type CheckoutResponse struct {
	OrderID     string          `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

// OrderItemResponse ligne de commande en réponse.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"` // vide si le produit a été supprimé
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderResponse commande pour le back-office.
type OrderResponse struct {
	ID              string              `json:"id"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerAddress string              `json:"customer_address"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	UserID          string              `json:"user_id,omitempty"` // vide si checkout anonyme
	CreatedAt       string              `json:"created_at"`
	Items           []OrderItemResponse `json:"items,omitempty"`
}

// UpdateOrderStatusRequest body pour PATCH /api/admin/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
