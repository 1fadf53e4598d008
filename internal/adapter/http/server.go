package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// NewApp assembles the Fiber application: request-ID and logging
// middleware on everything, token auth on the API surface.
func NewApp(h *Handler, apiToken string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "trading-backend",
	})

	app.Use(RequestID())
	app.Use(RequestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(apiToken))

	api.Post("/transactions/purchase", h.PurchaseOption)
	api.Post("/transactions/batch-delete", h.DeleteTransactionInBatch)
	api.Post("/transactions/search", h.FindTransactionsByTerm)
	api.Post("/transactions", h.AddTransaction)
	api.Put("/transactions", h.ModifyTransaction)
	api.Delete("/transactions", h.DeleteTransaction)
	api.Get("/transactions/:id", h.FindTransactionByID)
	api.Get("/transactions", h.FindAllTransactions)

	api.Get("/users/:id/transactions", h.FindTransactionsByUser)
	api.Get("/users/:id/income/yesterday", h.CalcIncomeYesterday)
	api.Get("/users/:id/income", h.CalcIncome)
	api.Get("/users/:id/summary", h.GetUserSummary)

	api.Post("/options/quotes", h.AddOptionQuote)
	api.Get("/options/:abbr/latest", h.GetLatestQuote)

	return app
}
