package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem ligne de panier : produit, prix unitaire TTC et quantité.
// Invariant : Quantity >= 1 ; une ligne qui atteint 0 est supprimée, pas conservée.
type CartItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Cart panier d'un visiteur, identifié par un jeton de session opaque.
// Sérialisé tel quel vers le stockage durable à chaque mutation.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems somme des quantités (badge d'en-tête boutique).
func (c *Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// TotalAmount somme des prix × quantités de toutes les lignes.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
