package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/darkom-tn/darkom-api/internal/application/billing"
	"github.com/darkom-tn/darkom-api/internal/application/dto"
)

// InvoiceHandler émission et consultation des documents de facturation (admin).
type InvoiceHandler struct {
	create    *billing.CreateInvoiceUseCase
	fromOrder *billing.InvoiceFromOrderUseCase
	pdf       *billing.PDFUseCase
}

// NewInvoiceHandler construit le handler.
func NewInvoiceHandler(
	create *billing.CreateInvoiceUseCase,
	fromOrder *billing.InvoiceFromOrderUseCase,
	pdf *billing.PDFUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{create: create, fromOrder: fromOrder, pdf: pdf}
}

// Create crée un document saisi manuellement (prix HT).
// POST /api/admin/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	invoice, err := h.create.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// FromOrder dérive un document depuis une commande validée (conversion TTC -> HT).
// POST /api/admin/orders/:id/invoice
func (h *InvoiceHandler) FromOrder(c *fiber.Ctx) error {
	var in dto.InvoiceFromOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	invoice, err := h.fromOrder.Generate(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// List liste les documents, les plus récents d'abord.
// GET /api/admin/invoices?limit=&offset=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pagination invalide"})
	}
	page.DefaultPage()
	list, err := h.create.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID retourne un document complet.
// GET /api/admin/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	invoice, err := h.create.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// DownloadPDF génère et renvoie le PDF du document en téléchargement.
// GET /api/admin/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}
