package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/handler"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/middleware"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/adapter/storage"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/config"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/ledger"
	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/worker"
)

func main() {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dbPool, err := storage.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := storage.RunMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	ownerRepo := storage.NewOwnerRepository(dbPool)
	ledgerRepo := storage.NewLedgerRepository(dbPool, cfg.WebhookURL)
	ledgerService := ledger.NewService(ledgerRepo, cfg.TransferPolicy)

	accountHandler := &handler.AccountHandler{Ledger: ledgerService, Owners: ownerRepo}
	transactionHandler := &handler.TransactionHandler{Ledger: ledgerService}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := dbPool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/v1")

	// Public: registration and key minting.
	api.Post("/users", accountHandler.RegisterOwner)
	api.Post("/users/:id/keys", accountHandler.GenerateKey)

	// Everything below runs with a resolved owner identity.
	private := api.Use(middleware.Protected(dbPool))
	private.Post("/accounts", accountHandler.CreateAccount)
	private.Get("/accounts", accountHandler.ListAccounts)
	private.Post("/accounts/:id/deactivate", accountHandler.Deactivate)
	private.Post("/deposit", middleware.Idempotency(dbPool), transactionHandler.Deposit)
	private.Post("/transfer", middleware.Idempotency(dbPool), transactionHandler.Transfer)
	private.Get("/accounts/:id/transactions", transactionHandler.GetHistory)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker.StartWebhookWorker(workerCtx, dbPool, cfg.WebhookSecret)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	stopWorker()

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	dbPool.Close()
	slog.Info("server exited")
}
