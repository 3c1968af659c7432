package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un article du catalogue domotique.
// Price est le prix de vente affiché en boutique, TTC (TND).
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string // ex: "eclairage", "securite", "capteurs"
	Active      bool   // false = retiré de la boutique, conservé pour l'historique
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
