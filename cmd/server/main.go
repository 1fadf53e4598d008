package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	httpadapter "github.com/optionfolio/trading-backend/internal/adapter/http"
	"github.com/optionfolio/trading-backend/internal/adapter/repository/postgres"
	"github.com/optionfolio/trading-backend/internal/usecase/dashboard"
	"github.com/optionfolio/trading-backend/internal/usecase/ledger"
	"github.com/optionfolio/trading-backend/internal/usecase/seeder"
)

const (
	defaultAPIToken = "dev-token"
	defaultPort     = "8080"

	defaultDemoUserID  = "demo"
	defaultDemoBalance = "100000"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOrDefault("DB_HOST", "localhost")
		port := envOrDefault("DB_PORT", "5432")
		user := envOrDefault("DB_USER", "postgres")
		password := envOrDefault("DB_PASSWORD", "postgres")
		dbname := envOrDefault("DB_NAME", "optionfolio")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// 2. Initialize Repositories (Postgres)
	transactionRepo := postgres.NewTransactionRepository(db)
	optionRepo := postgres.NewOptionRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// 3. Initialize Services (Use Cases)
	ledgerService := ledger.NewLedgerService(transactionRepo, optionRepo, userRepo)
	dashboardService := dashboard.NewDashboardService(userRepo, transactionRepo)

	// Ensure the demo account exists so a fresh deployment is usable
	demoBalance, err := decimal.NewFromString(envOrDefault("DEMO_USER_BALANCE", defaultDemoBalance))
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid DEMO_USER_BALANCE")
	}
	demoUserID := envOrDefault("DEMO_USER_ID", defaultDemoUserID)

	demoSeeder := seeder.NewDemoSeeder(userRepo)
	if err := demoSeeder.Seed(context.Background(), demoUserID, demoBalance); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed demo user")
	}
	logger.Info().Str("user", demoUserID).Msg("demo user ready")

	// 4. Start HTTP Server
	apiToken := envOrDefault("API_TOKEN", defaultAPIToken)
	port := envOrDefault("PORT", defaultPort)

	handler := httpadapter.NewHandler(ledgerService, dashboardService, optionRepo, logger)
	app := httpadapter.NewApp(handler, apiToken, logger)

	go func() {
		logger.Info().Str("port", port).Msg("http server listening")
		if err := app.Listen(":" + port); err != nil {
			logger.Fatal().Err(err).Msg("failed to serve http")
		}
	}()

	waitForShutdown(app, logger)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error().Err(err).Msg("shutdown did not complete cleanly")
	}
	logger.Info().Msg("http server stopped")
}
