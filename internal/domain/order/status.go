package order

// Status état d'une commande dans le back-office.
type Status string

const (
	// StatusNew : commande créée au checkout, pas encore traitée.
	StatusNew Status = "new"
	// StatusPending : prise en charge, en attente de confirmation client.
	StatusPending Status = "pending"
	// StatusValidated : confirmée par un administrateur ; facturable.
	StatusValidated Status = "validated"
	// StatusCancelled : annulée (par le client ou le back-office).
	StatusCancelled Status = "cancelled"
	// StatusProcessing : en préparation.
	StatusProcessing Status = "processing"
	// StatusShipped : remise au transporteur.
	StatusShipped Status = "shipped"
	// StatusDelivered : livrée au client.
	StatusDelivered Status = "delivered"
)

// String retourne la représentation texte du statut.
func (s Status) String() string {
	return string(s)
}

// Valid indique si la valeur correspond à un statut connu.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPending, StatusValidated, StatusCancelled,
		StatusProcessing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// transitions autorisées : l'annulation reste possible tant que la commande
// n'est pas expédiée ; les états terminaux (cancelled, delivered) sont figés.
var transitions = map[Status][]Status{
	StatusNew:        {StatusPending, StatusValidated, StatusCancelled},
	StatusPending:    {StatusValidated, StatusCancelled},
	StatusValidated:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// CanTransition indique si le passage from -> to est autorisé.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
