package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/optionfolio/trading-backend/internal/adapter/repository/postgres"
)

const migrationsFile = "migrations/schema.sql"

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
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

	schema, err := os.ReadFile(migrationsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", migrationsFile).Msg("failed to read migrations file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info().Msg("applying migrations")
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	logger.Info().Msg("migrations applied")
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
