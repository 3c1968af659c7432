package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkom-tn/darkom-api/internal/application/checkout"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
)

// CheckoutHandler transforme le panier de la session en commande.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construit le handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Submit soumet la commande. Anonyme ou connecté : si un Bearer Token valide
// est présent (OptionalAuth), la commande est rattachée au compte.
// POST /api/checkout
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	resp, err := h.uc.Submit(c.Context(), GetCartSession(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
