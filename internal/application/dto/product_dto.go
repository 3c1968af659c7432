package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body pour POST /api/admin/products.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"` // TTC
	ImageURL    string          `json:"image_url,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// UpdateProductRequest body pour PUT /api/admin/products/:id.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Category    string          `json:"category,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// ProductResponse produit en réponse boutique/back-office.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Category    string          `json:"category,omitempty"`
	Active      bool            `json:"active"`
}
