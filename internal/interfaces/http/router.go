package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/darkom-tn/darkom-api/internal/application/auth"
	"github.com/darkom-tn/darkom-api/internal/application/billing"
	"github.com/darkom-tn/darkom-api/internal/application/cart"
	"github.com/darkom-tn/darkom-api/internal/application/catalog"
	"github.com/darkom-tn/darkom-api/internal/application/checkout"
	"github.com/darkom-tn/darkom-api/internal/application/orders"
	"github.com/darkom-tn/darkom-api/internal/domain/entity"
	"github.com/darkom-tn/darkom-api/internal/domain/repository"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	CartStore   *cart.Store
	ProductRepo repository.ProductRepository
	CheckoutUC  *checkout.UseCase
	OrdersUC    *orders.UseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.CreateInvoiceUseCase
	FromOrderUC *billing.InvoiceFromOrderUseCase
	PDFUC       *billing.PDFUseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router enregistre les routes de l'API : boutique publique d'un côté,
// back-office réservé au rôle admin de l'autre.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catalogue (public, lecture seule)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)

	// Panier (public, session via en-tête)
	cartGroup := api.Group("/cart", CartSession())
	cartHandler := NewCartHandler(deps.CartStore, deps.ProductRepo)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productId", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)

	// Checkout (public, rattaché au compte si token présent)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	api.Post("/checkout", CartSession(), OptionalAuth(deps.JWTSecret), checkoutHandler.Submit)

	// Back-office (Bearer Token + rôle admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)

	orderHandler := NewOrderHandler(deps.OrdersUC)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.FromOrderUC, deps.PDFUC)
	admin.Get("/orders", orderHandler.List)
	admin.Get("/orders/:id", orderHandler.GetByID)
	admin.Patch("/orders/:id/status", orderHandler.UpdateStatus)
	admin.Post("/orders/:id/invoice", invoiceHandler.FromOrder)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	admin.Post("/customers", customerHandler.Create)
	admin.Get("/customers", customerHandler.List)
	admin.Get("/customers/:id", customerHandler.GetByID)

	admin.Post("/invoices", invoiceHandler.Create)
	admin.Get("/invoices", invoiceHandler.List)
	admin.Get("/invoices/:id", invoiceHandler.GetByID)
	admin.Get("/invoices/:id/pdf", invoiceHandler.DownloadPDF)
}
