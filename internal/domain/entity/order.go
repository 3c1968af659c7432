package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/darkom-tn/darkom-api/internal/domain/order"
)

// Order représente une commande passée au checkout.
// TotalAmount est un instantané du total du panier au moment de la soumission ;
// il n'est jamais recalculé ensuite. UserID est nil pour un achat anonyme.
type Order struct {
	ID              string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	TotalAmount     decimal.Decimal
	Status          order.Status
	UserID          *string
	CreatedAt       time.Time
}

// OrderItem ligne de commande. ProductName et Price sont des instantanés
// dénormalisés : la ligne reste lisible même si le produit est supprimé
// (ProductID devient nil). Immuable après insertion.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   *string
	ProductName string
	Price       decimal.Decimal // prix unitaire TTC au moment de la commande
	Quantity    int
}
