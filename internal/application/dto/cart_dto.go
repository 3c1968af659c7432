package dto

import "github.com/shopspring/decimal"

// AddToCartRequest body pour POST /api/cart/items.
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"` // optionnel, défaut 1
}

// UpdateCartItemRequest body pour PUT /api/cart/items/:productId.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse ligne de panier en réponse.
type CartItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// CartResponse panier complet avec totaux dérivés.
// TotalAmount affiché boutique : 2 décimales.
type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalItems  int                `json:"total_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}
