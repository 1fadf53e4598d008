package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optionfolio/trading-backend/internal/domain"
	"github.com/optionfolio/trading-backend/internal/usecase/dashboard"
	"github.com/optionfolio/trading-backend/internal/usecase/ledger"
)

// Stub repositories backing the handler tests. Only the calls a test
// exercises are given behavior; everything else fails loudly.

type stubTransactionRepo struct {
	domain.TransactionRepository

	listErr      error
	transactions []*domain.Transaction
	getErr       error
	got          *domain.Transaction
}

func (s *stubTransactionRepo) List(ctx context.Context) ([]*domain.Transaction, error) {
	return s.transactions, s.listErr
}

func (s *stubTransactionRepo) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.got, nil
}

type stubOptionRepo struct {
	domain.OptionRepository

	quote *domain.Option
	err   error
}

func (s *stubOptionRepo) GetLatestQuote(ctx context.Context, abbr string) (*domain.Option, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

type stubUserRepo struct {
	domain.UserRepository

	user *domain.User
	err  error
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newTestApp(txRepo domain.TransactionRepository, optionRepo domain.OptionRepository, userRepo domain.UserRepository) *fiber.App {
	ledgerService := ledger.NewLedgerService(txRepo, optionRepo, userRepo)
	dashboardService := dashboard.NewDashboardService(userRepo, txRepo)
	handler := NewHandler(ledgerService, dashboardService, optionRepo, zerolog.Nop())

	app := fiber.New()
	app.Post("/api/transactions/purchase", handler.PurchaseOption)
	app.Get("/api/transactions/:id", handler.FindTransactionByID)
	app.Get("/api/transactions", handler.FindAllTransactions)
	app.Post("/api/transactions/search", handler.FindTransactionsByTerm)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *nethttp.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResult(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var out struct {
		Result string `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Result
}

func TestPurchaseOption_InsufficientFundsCollapsesToFailure(t *testing.T) {
	app := newTestApp(
		&stubTransactionRepo{},
		&stubOptionRepo{quote: &domain.Option{
			OptionAbbr:  "AU2012C",
			Time:        time.Now(),
			LatestPrice: decimal.NewFromInt(50),
		}},
		&stubUserRepo{user: &domain.User{
			ID:       "alice",
			UserInfo: domain.UserInfo{Balance: decimal.NewFromInt(10)},
		}},
	)

	resp := postJSON(t, app, "/api/transactions/purchase", map[string]interface{}{
		"optionAbbr":           "AU2012C",
		"transactionType":      "OPEN",
		"transactionDirection": "BUY",
		"quantity":             1,
		"userId":               "alice",
	})

	// Business failures and storage failures look identical to the
	// caller: one FAILURE signal, HTTP 200.
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, resultFailure, decodeResult(t, resp))
}

func TestPurchaseOption_MalformedBodyCollapsesToFailure(t *testing.T) {
	app := newTestApp(&stubTransactionRepo{}, &stubOptionRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(nethttp.MethodPost, "/api/transactions/purchase", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, resultFailure, decodeResult(t, resp))
}

func TestFindTransactionByID_AbsentYieldsNullNotError(t *testing.T) {
	app := newTestApp(&stubTransactionRepo{getErr: domain.ErrNotFound}, &stubOptionRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(nethttp.MethodGet, "/api/transactions/123", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Nil(t, out)
}

func TestFindAllTransactions_StorageFailureYieldsEmptyList(t *testing.T) {
	app := newTestApp(&stubTransactionRepo{listErr: errors.New("connection reset")}, &stubOptionRepo{}, &stubUserRepo{})

	req := httptest.NewRequest(nethttp.MethodGet, "/api/transactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out)
}

func TestFindTransactionsByTerm_UnknownKindYieldsEmptyList(t *testing.T) {
	app := newTestApp(&stubTransactionRepo{}, &stubOptionRepo{}, &stubUserRepo{})

	resp := postJSON(t, app, "/api/transactions/search", []map[string]interface{}{
		{"kind": "SOMETHING_ELSE"},
	})
	defer resp.Body.Close()

	var out []interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Empty(t, out)
}
