package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkom-tn/darkom-api/internal/application/cart"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// CartHandler gère le panier de la session visiteur.
type CartHandler struct {
	store    *cart.Store
	products repository.ProductRepository
}

// NewCartHandler construit le handler.
func NewCartHandler(store *cart.Store, products repository.ProductRepository) *CartHandler {
	return &CartHandler{store: store, products: products}
}

// Get retourne le panier de la session.
// GET /api/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart := h.store.Get(c.Context(), GetCartSession(c))
	return c.JSON(toCartResponse(cart))
}

// AddItem ajoute un produit au panier. Le nom et le prix sont instantanés au
// moment de l'ajout ; un produit inconnu ou désactivé est refusé.
// POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	product, err := h.products.GetByID(c.Context(), in.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	if product == nil || !product.Active {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
	}
	cart := h.store.AddItem(c.Context(), GetCartSession(c), product, in.Quantity)
	return c.JSON(toCartResponse(cart))
}

// UpdateItem fixe la quantité d'une ligne ; une quantité <= 0 la supprime.
// PUT /api/cart/items/:productId
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	cart := h.store.UpdateQuantity(c.Context(), GetCartSession(c), c.Params("productId"), in.Quantity)
	return c.JSON(toCartResponse(cart))
}

// RemoveItem supprime une ligne du panier.
// DELETE /api/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	cart := h.store.RemoveItem(c.Context(), GetCartSession(c), c.Params("productId"))
	return c.JSON(toCartResponse(cart))
}

// Clear vide le panier.
// DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.store.Clear(c.Context(), GetCartSession(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func toCartResponse(c *entity.Cart) dto.CartResponse {
	resp := dto.CartResponse{
		Items:       make([]dto.CartItemResponse, 0, len(c.Items)),
		TotalItems:  c.TotalItems(),
		TotalAmount: c.TotalAmount().Round(2),
	}
	for _, it := range c.Items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
		})
	}
	return resp
}
