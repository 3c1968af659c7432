package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/darkom-tn/darkom-api/internal/application/auth"
	"github.com/darkom-tn/darkom-api/internal/application/billing"
	"github.com/darkom-tn/darkom-api/internal/application/cart"
	"github.com/darkom-tn/darkom-api/internal/application/catalog"
	"github.com/darkom-tn/darkom-api/internal/application/checkout"
	"github.com/darkom-tn/darkom-api/internal/application/orders"
	"github.com/darkom-tn/darkom-api/internal/infrastructure/notify"
	infrapdf "github.com/darkom-tn/darkom-api/internal/infrastructure/pdf"
	"github.com/darkom-tn/darkom-api/internal/infrastructure/postgres"
	httpRouter "github.com/darkom-tn/darkom-api/internal/interfaces/http"
	"github.com/darkom-tn/darkom-api/pkg/config"
	"github.com/darkom-tn/darkom-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	cartStore := cart.NewStore(cartRepo, log.Zerolog())
	catalogUC := catalog.NewUseCase(productRepo)
	checkoutUC := checkout.NewUseCase(cartStore, txRunner)
	ordersUC := orders.NewUseCase(orderRepo, log.Zerolog())
	customerUC := billing.NewCustomerUseCase(customerRepo)
	invoiceUC := billing.NewCreateInvoiceUseCase(txRunner, customerRepo, invoiceRepo, cfg.Billing.TimbreFiscal)
	fromOrderUC := billing.NewInvoiceFromOrderUseCase(txRunner, orderRepo, customerRepo, invoiceRepo, cfg.Billing.TimbreFiscal)

	seller := billing.SellerInfo{
		Name:    cfg.Billing.SellerName,
		Address: cfg.Billing.SellerAddr,
		Phone:   cfg.Billing.SellerPhone,
		Email:   cfg.Billing.SellerEmail,
		TaxID:   cfg.Billing.SellerTaxID,
	}
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, infrapdf.NewMarotoInvoiceGenerator(), seller)
	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	// Dispatcher de notifications : relit l'outbox et alerte le personnel par email.
	mailer := notify.NewMailer(cfg.SMTP)
	poller := notify.NewPoller(
		outboxRepo, mailer,
		time.Duration(cfg.Outbox.PollSeconds)*time.Second,
		cfg.Outbox.BatchSize,
		log.Zerolog(),
	)
	go poller.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la génération PDF peut dépasser 10s à froid
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Darkom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		CartStore:   cartStore,
		ProductRepo: productRepo,
		CheckoutUC:  checkoutUC,
		OrdersUC:    ordersUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		FromOrderUC: fromOrderUC,
		PDFUC:       pdfUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")
	stop() // un second signal interrompt immédiatement

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
