// Package checkout transforme un panier en commande persistée.
//
// Déroulé : validation des champs de livraison (aucune écriture en cas
// d'échec), puis une transaction unique qui insère la commande, ses lignes en
// batch et l'événement outbox de notification. Le panier n'est vidé qu'après
// commit ; en cas d'erreur il est préservé et l'utilisateur peut resoumettre.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/darkom-tn/darkom-api/internal/application/cart"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// Seuils de validation des champs de livraison.
const (
	minNameLen    = 3
	minPhoneLen   = 8
	minAddressLen = 10
)

// ValidationError porte les messages par champ pour l'affichage inline.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation: " + strings.Join(parts, "; ")
}

// UseCase soumission de commande.
type UseCase struct {
	cartStore *cart.Store
	txRunner  TxRunner
}

// NewUseCase construit le cas d'usage.
func NewUseCase(cartStore *cart.Store, txRunner TxRunner) *UseCase {
	return &UseCase{cartStore: cartStore, txRunner: txRunner}
}

// orderPlacedPayload contenu de l'événement outbox envoyé au personnel.
type orderPlacedPayload struct {
	OrderID         string             `json:"order_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Items           []orderPlacedItem  `json:"items"`
}

type orderPlacedItem struct {
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Submit valide les champs de livraison puis enregistre la commande.
// userID est vide pour un checkout anonyme (chemin supporté explicitement).
func (uc *UseCase) Submit(ctx context.Context, sessionID, userID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	// Panier vide : rejet avant tout appel distant.
	c := uc.cartStore.Get(ctx, sessionID)
	if len(c.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now()
	o := &entity.Order{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		TotalAmount:     c.TotalAmount(), // instantané, jamais recalculé
		Status:          order.StatusNew,
		CreatedAt:       now,
	}
	if userID != "" {
		o.UserID = &userID
	}

	items := make([]*entity.OrderItem, 0, len(c.Items))
	payloadItems := make([]orderPlacedItem, 0, len(c.Items))
	for _, ci := range c.Items {
		productID := ci.ProductID
		items = append(items, &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ProductID:   &productID,
			ProductName: ci.Name,
			Price:       ci.Price,
			Quantity:    ci.Quantity,
		})
		payloadItems = append(payloadItems, orderPlacedItem{
			ProductName: ci.Name,
			Price:       ci.Price,
			Quantity:    ci.Quantity,
		})
	}

	payload, err := json.Marshal(orderPlacedPayload{
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Items:           payloadItems,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: sérialiser la notification: %w", err)
	}

	err = uc.txRunner.RunCheckout(ctx, func(
		orderRepo repository.OrderRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		if err := orderRepo.CreateItems(ctx, items); err != nil {
			return err
		}
		return outboxRepo.Create(ctx, &repository.OutboxEvent{
			ID:          uuid.New().String(),
			EventType:   repository.EventOrderPlaced,
			AggregateID: o.ID,
			Payload:     payload,
			CreatedAt:   now,
		})
	})
	if err != nil {
		// Le panier est préservé : l'utilisateur corrige et resoumet.
		return nil, err
	}

	uc.cartStore.Clear(ctx, sessionID)

	return &dto.CheckoutResponse{
		OrderID:     o.ID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
	}, nil
}

// validate contrôle les champs de livraison et accumule les messages par champ.
func validate(in dto.CheckoutRequest) error {
	fields := make(map[string]string)
	if len(strings.TrimSpace(in.CustomerName)) < minNameLen {
		fields["customer_name"] = fmt.Sprintf("le nom complet doit faire au moins %d caractères", minNameLen)
	}
	if len(strings.TrimSpace(in.CustomerPhone)) < minPhoneLen {
		fields["customer_phone"] = fmt.Sprintf("le téléphone doit faire au moins %d caractères", minPhoneLen)
	}
	if len(strings.TrimSpace(in.CustomerAddress)) < minAddressLen {
		fields["customer_address"] = fmt.Sprintf("l'adresse doit faire au moins %d caractères", minAddressLen)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
