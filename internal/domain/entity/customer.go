package entity

import "time"

// Customer représente un client de facturation.
// Créé soit par un administrateur, soit automatiquement depuis les champs de
// livraison d'une commande (recherche par téléphone, création si absent).
type Customer struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
