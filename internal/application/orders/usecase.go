// Package orders porte le suivi back-office des commandes : consultation et
// avancement du statut le long du cycle de vie.
package orders

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/order"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// UseCase suivi des commandes.
type UseCase struct {
	repo repository.OrderRepository
	log  zerolog.Logger
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.OrderRepository, log zerolog.Logger) *UseCase {
	return &UseCase{repo: repo, log: log}
}

// List retourne les commandes, les plus récentes d'abord, filtrées par statut
// si fourni.
func (uc *UseCase) List(ctx context.Context, status string, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	var st order.Status
	if status != "" {
		st = order.Status(status)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: statut %q inconnu", domain.ErrInvalidInput, status)
		}
	}
	list, err := uc.repo.List(ctx, st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

// GetByID retourne la commande avec ses lignes.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repo.GetItemsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, items), nil
}

// UpdateStatus fait avancer la commande. Seules les transitions du cycle de
// vie sont acceptées ; une transition interdite renvoie domain.ErrConflict
// sans toucher la commande.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	target := order.Status(in.Status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: statut %q inconnu", domain.ErrInvalidInput, in.Status)
	}

	o, err := uc.repo.GetByID(ctx, id)
	if err != nil || o == nil {
		return nil, domain.ErrNotFound
	}
	if !order.CanTransition(o.Status, target) {
		return nil, fmt.Errorf("%w: transition %s -> %s interdite", domain.ErrConflict, o.Status, target)
	}

	if err := uc.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", id).
		Str("from", string(o.Status)).
		Str("to", string(target)).
		Msg("statut de commande mis à jour")

	o.Status = target
	return toOrderResponse(o, nil), nil
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.UserID != nil {
		resp.UserID = *o.UserID
	}
	for _, it := range items {
		line := dto.OrderItemResponse{
			ID:          it.ID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		}
		if it.ProductID != nil {
			line.ProductID = *it.ProductID
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
