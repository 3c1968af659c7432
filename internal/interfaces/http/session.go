package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkom-tn/darkom-api/internal/application/dto"
)

// HeaderCartSession identifie le panier du visiteur. Le front génère un id
// opaque à la première visite et le renvoie sur chaque appel panier/checkout.
const HeaderCartSession = "X-Cart-Session"

// CartSession exige l'en-tête de session panier et le charge dans c.Locals.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(HeaderCartSession)
		if sessionID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "MISSING_SESSION",
				Message: "en-tête " + HeaderCartSession + " requis",
			})
		}
		c.Locals("cart_session", sessionID)
		return c.Next()
	}
}

// GetCartSession retourne l'id de session panier (après CartSession).
func GetCartSession(c *fiber.Ctx) string {
	v := c.Locals("cart_session")
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
