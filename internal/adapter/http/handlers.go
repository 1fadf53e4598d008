package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/optionfolio/trading-backend/internal/domain"
	"github.com/optionfolio/trading-backend/internal/usecase/dashboard"
	"github.com/optionfolio/trading-backend/internal/usecase/ledger"
)

// Collapsed operation outcome, kept for compatibility with existing
// callers: every write reports SUCCESS or FAILURE and nothing else,
// reads report an empty result on any failure. The error taxonomy the
// services produce stops here.
const (
	resultSuccess = "SUCCESS"
	resultFailure = "FAILURE"
)

// Handler exposes the ledger operations over HTTP/JSON
type Handler struct {
	Ledger    *ledger.LedgerService
	Dashboard *dashboard.DashboardService
	Options   domain.OptionRepository
	Log       zerolog.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(
	ledgerService *ledger.LedgerService,
	dashboardService *dashboard.DashboardService,
	optionRepo domain.OptionRepository,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		Ledger:    ledgerService,
		Dashboard: dashboardService,
		Options:   optionRepo,
		Log:       log,
	}
}

func resultJSON(c *fiber.Ctx, result string) error {
	return c.JSON(fiber.Map{"result": result})
}

type purchaseRequest struct {
	OptionAbbr string `json:"optionAbbr"`
	Type       string `json:"transactionType"`
	Direction  string `json:"transactionDirection"`
	Quantity   int    `json:"quantity"`
	UserID     string `json:"userId"`
}

// PurchaseOption handles POST /api/transactions/purchase
func (h *Handler) PurchaseOption(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return resultJSON(c, resultFailure)
	}

	_, err := h.Ledger.PurchaseOption(c.UserContext(), ledger.PurchaseInput{
		OptionAbbr: req.OptionAbbr,
		Type:       domain.TransactionType(req.Type),
		Direction:  domain.TransactionDirection(req.Direction),
		Quantity:   req.Quantity,
		UserID:     req.UserID,
	})
	if err != nil {
		h.Log.Warn().Err(err).Str("user", req.UserID).Str("option", req.OptionAbbr).Msg("purchase failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

// AddTransaction handles POST /api/transactions
func (h *Handler) AddTransaction(c *fiber.Ctx) error {
	var payload transactionPayload
	if err := c.BodyParser(&payload); err != nil {
		return resultJSON(c, resultFailure)
	}

	if err := h.Ledger.AddTransaction(c.UserContext(), payload.toDomain()); err != nil {
		h.Log.Warn().Err(err).Msg("add transaction failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

// DeleteTransaction handles DELETE /api/transactions
func (h *Handler) DeleteTransaction(c *fiber.Ctx) error {
	var payload transactionPayload
	if err := c.BodyParser(&payload); err != nil {
		return resultJSON(c, resultFailure)
	}

	if err := h.Ledger.DeleteTransaction(c.UserContext(), payload.toDomain()); err != nil {
		h.Log.Warn().Err(err).Int64("tid", payload.TID).Msg("delete transaction failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

type batchDeleteRequest struct {
	TIDs []int64 `json:"tids"`
}

// DeleteTransactionInBatch handles POST /api/transactions/batch-delete
func (h *Handler) DeleteTransactionInBatch(c *fiber.Ctx) error {
	var req batchDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return resultJSON(c, resultFailure)
	}

	if err := h.Ledger.DeleteTransactionInBatch(c.UserContext(), req.TIDs); err != nil {
		h.Log.Warn().Err(err).Ints64("tids", req.TIDs).Msg("batch delete failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

// ModifyTransaction handles PUT /api/transactions
func (h *Handler) ModifyTransaction(c *fiber.Ctx) error {
	var payload transactionPayload
	if err := c.BodyParser(&payload); err != nil {
		return resultJSON(c, resultFailure)
	}

	if err := h.Ledger.ModifyTransaction(c.UserContext(), payload.toDomain()); err != nil {
		h.Log.Warn().Err(err).Int64("tid", payload.TID).Msg("modify transaction failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

// FindTransactionByID handles GET /api/transactions/:id
// An unknown ID (or a storage failure) yields a JSON null body, never
// an error status.
func (h *Handler) FindTransactionByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.JSON(nil)
	}

	t, err := h.Ledger.FindTransactionByID(c.UserContext(), int64(id))
	if err != nil {
		return c.JSON(nil)
	}

	return c.JSON(fromDomain(t))
}

// FindAllTransactions handles GET /api/transactions
func (h *Handler) FindAllTransactions(c *fiber.Ctx) error {
	transactions, err := h.Ledger.FindAllTransactions(c.UserContext())
	if err != nil {
		h.Log.Warn().Err(err).Msg("list transactions failed")
		return c.JSON([]transactionPayload{})
	}

	return c.JSON(fromDomainList(transactions))
}

// FindTransactionsByUser handles GET /api/users/:id/transactions
func (h *Handler) FindTransactionsByUser(c *fiber.Ctx) error {
	transactions, err := h.Ledger.FindTransactionsByUser(c.UserContext(), c.Params("id"))
	if err != nil {
		h.Log.Warn().Err(err).Str("user", c.Params("id")).Msg("list user transactions failed")
		return c.JSON([]transactionPayload{})
	}

	return c.JSON(fromDomainList(transactions))
}

// FindTransactionsByTerm handles POST /api/transactions/search
// A malformed term list yields an empty result, not a partial one.
func (h *Handler) FindTransactionsByTerm(c *fiber.Ctx) error {
	var descriptors []termDescriptor
	if err := c.BodyParser(&descriptors); err != nil {
		return c.JSON([]transactionPayload{})
	}

	terms, err := parseTerms(descriptors)
	if err != nil {
		h.Log.Warn().Err(err).Msg("rejected search terms")
		return c.JSON([]transactionPayload{})
	}

	transactions, err := h.Ledger.FindTransactionsByTerm(c.UserContext(), terms)
	if err != nil {
		h.Log.Warn().Err(err).Msg("term search failed")
		return c.JSON([]transactionPayload{})
	}

	return c.JSON(fromDomainList(transactions))
}

// CalcIncome handles GET /api/users/:id/income
func (h *Handler) CalcIncome(c *fiber.Ctx) error {
	total, err := h.Ledger.CalcIncome(c.UserContext(), c.Params("id"))
	if err != nil {
		h.Log.Warn().Err(err).Str("user", c.Params("id")).Msg("income calculation failed")
		return resultJSON(c, resultFailure)
	}

	return c.JSON(fiber.Map{"income": total})
}

// CalcIncomeYesterday handles GET /api/users/:id/income/yesterday
func (h *Handler) CalcIncomeYesterday(c *fiber.Ctx) error {
	total, err := h.Ledger.CalcIncomeYesterday(c.UserContext(), c.Params("id"))
	if err != nil {
		h.Log.Warn().Err(err).Str("user", c.Params("id")).Msg("yesterday income calculation failed")
		return resultJSON(c, resultFailure)
	}

	return c.JSON(fiber.Map{"income": total})
}

// GetUserSummary handles GET /api/users/:id/summary
func (h *Handler) GetUserSummary(c *fiber.Ctx) error {
	summary, err := h.Dashboard.GetUserSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		h.Log.Warn().Err(err).Str("user", c.Params("id")).Msg("summary failed")
		return c.JSON(nil)
	}

	return c.JSON(fiber.Map{
		"userId":             summary.UserID,
		"balance":            summary.Balance,
		"totalIncome":        summary.TotalIncome,
		"yesterdayIncome":    summary.YesterdayIncome,
		"transactionCount":   summary.TransactionCount,
		"recentTransactions": fromDomainList(summary.RecentTransactions),
	})
}

type quoteRequest struct {
	OptionAbbr  string          `json:"optionAbbr"`
	Time        time.Time       `json:"time"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// AddOptionQuote handles POST /api/options/quotes
func (h *Handler) AddOptionQuote(c *fiber.Ctx) error {
	var req quoteRequest
	if err := c.BodyParser(&req); err != nil {
		return resultJSON(c, resultFailure)
	}

	if req.OptionAbbr == "" || req.LatestPrice.IsNegative() {
		return resultJSON(c, resultFailure)
	}
	if req.Time.IsZero() {
		req.Time = time.Now()
	}

	quote := &domain.Option{
		OptionAbbr:  req.OptionAbbr,
		Time:        req.Time,
		LatestPrice: req.LatestPrice,
	}
	if err := h.Options.AddQuote(c.UserContext(), quote); err != nil {
		h.Log.Warn().Err(err).Str("option", req.OptionAbbr).Msg("add quote failed")
		return resultJSON(c, resultFailure)
	}

	return resultJSON(c, resultSuccess)
}

// GetLatestQuote handles GET /api/options/:abbr/latest
func (h *Handler) GetLatestQuote(c *fiber.Ctx) error {
	quote, err := h.Options.GetLatestQuote(c.UserContext(), c.Params("abbr"))
	if err != nil {
		return c.JSON(nil)
	}

	return c.JSON(fiber.Map{
		"optionAbbr":  quote.OptionAbbr,
		"time":        quote.Time,
		"latestPrice": quote.LatestPrice,
	})
}
