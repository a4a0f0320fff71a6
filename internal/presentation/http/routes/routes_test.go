package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/config"
	"github.com/sangkips/posledger/internal/infrastructure/lock"
	"github.com/sangkips/posledger/internal/infrastructure/repository"
	"github.com/sangkips/posledger/internal/presentation/http/handler"
	"github.com/sangkips/posledger/internal/testutil"
	"github.com/sangkips/posledger/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Details map[string]any `json:"details"`
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newTestRouter(t *testing.T, rateLimit int) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	log := zap.NewNop()
	locker := lock.NewLocalLocker()
	uow := repository.NewUnitOfWork(db)

	productRepo := repository.NewProductRepository(db)
	partyRepo := repository.NewPartyRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	cashRepo := repository.NewCashRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	opts := service.DefaultLedgerOptions()
	orders := service.NewOrderService(uow, productRepo, partyRepo, cashRepo, saleRepo, purchaseRepo, locker, opts, log)
	documents := service.NewDocumentService(saleRepo, purchaseRepo)
	stock := service.NewStockService(productRepo, movementRepo)

	handlers := &Handlers{
		Sale:     handler.NewSaleHandler(orders, documents),
		Purchase: handler.NewPurchaseHandler(orders, documents),
		Stock:    handler.NewStockHandler(orders, stock),
		Document: handler.NewDocumentHandler(service.NewReversalService(uow, saleRepo, purchaseRepo, movementRepo, locker, opts, log)),
		Product:  handler.NewProductHandler(service.NewProductService(uow, productRepo, movementRepo)),
		Party:    handler.NewPartyHandler(service.NewPartyService(partyRepo, ledgerRepo), service.NewLedgerService(partyRepo, ledgerRepo)),
		Cash:     handler.NewCashHandler(service.NewCashService(cashRepo)),
		HeldSale: handler.NewHeldSaleHandler(service.NewHeldSaleService(uow, repository.NewHeldSaleRepository(db)), orders),
	}

	jwtManager := utils.NewJWTManager(testSecret, "posledger")
	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             &config.Config{App: config.AppConfig{Name: "posledger"}, RateLimit: config.RateLimitConfig{Requests: rateLimit, Duration: 60}},
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Logger:          log,
	})

	token, err := jwtManager.GenerateAccessToken("till-1", []string{"cashier"}, time.Hour)
	require.NoError(t, err)

	return &apiClient{t: t, router: router, token: token}
}

func (a *apiClient) do(method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (a *apiClient) createProduct(name string, price, opening int64) string {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/products", map[string]any{
		"name":          name,
		"sku":           name + "-SKU",
		"unit_cost":     price / 2,
		"sale_price":    price,
		"min_stock":     1,
		"opening_stock": opening,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var product struct {
		ID    string `json:"id"`
		Stock int64  `json:"stock"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &product))
	require.Equal(a.t, opening, product.Stock)
	return product.ID
}

func (a *apiClient) stock(productID string) int64 {
	a.t.Helper()
	rec, env := a.do(http.MethodGet, "/api/v1/products/"+productID+"/stock", nil)
	require.Equal(a.t, http.StatusOK, rec.Code)
	var level struct {
		Stock int64 `json:"stock"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &level))
	return level.Stock
}

func TestHealthIsPublic(t *testing.T) {
	api := newTestRouter(t, 100)
	api.token = ""

	rec, _ := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	api := newTestRouter(t, 100)

	api.token = ""
	rec, env := api.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", env.Kind)

	api.token = "not-a-jwt"
	rec, _ = api.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other := utils.NewJWTManager("another-secret", "posledger")
	forged, err := other.GenerateAccessToken("till-1", nil, time.Hour)
	require.NoError(t, err)
	api.token = forged
	rec, _ = api.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSaleLifecycle(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 5)

	rec, env := api.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"items":         []map[string]any{{"product_id": productID, "quantity": 2}},
		"payment_mode":  "cash",
		"cash_received": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		Sale struct {
			ID        string `json:"id"`
			InvoiceNo string `json:"invoice_no"`
			Total     int64  `json:"total"`
		} `json:"sale"`
		Change int64 `json:"change"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "INV-000001", result.Sale.InvoiceNo)
	assert.Equal(t, int64(600), result.Sale.Total)
	assert.Equal(t, int64(400), result.Change)
	assert.Equal(t, int64(3), api.stock(productID))

	rec, _ = api.do(http.MethodGet, "/api/v1/sales/"+result.Sale.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodDelete, "/api/v1/documents/"+result.Sale.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(5), api.stock(productID))

	rec, env = api.do(http.MethodDelete, "/api/v1/documents/"+result.Sale.ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_reverted", env.Kind)

	rec, env = api.do(http.MethodGet, "/api/v1/sales?status=cancelled", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, result.Sale.ID, page.Items[0].ID)
}

func TestErrorResponses(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 1)

	rec, env := api.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"items":         []map[string]any{{"product_id": productID, "quantity": 2}},
		"payment_mode":  "cash",
		"cash_received": 1000,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_stock", env.Kind)
	assert.Equal(t, productID, env.Details["product_id"])
	assert.EqualValues(t, 2, env.Details["requested"])
	assert.EqualValues(t, 1, env.Details["available"])

	rec, env = api.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"items":        []map[string]any{{"product_id": productID, "quantity": 0}},
		"payment_mode": "cash",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", env.Kind)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "items[0].quantity", env.Errors[0].Field)

	rec, env = api.do(http.MethodGet, "/api/v1/sales/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", env.Kind)

	rec, env = api.do(http.MethodDelete, "/api/v1/documents/7b0c1f2e-3a4d-4b5c-8d6e-9f0a1b2c3d4e", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Kind)
}

func TestIdempotentSale(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 5)
	body := map[string]any{
		"items":         []map[string]any{{"product_id": productID, "quantity": 1}},
		"payment_mode":  "cash",
		"cash_received": 300,
	}

	first, _ := api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second, _ := api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "sale-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int64(4), api.stock(productID))

	body["cash_received"] = 500
	reused, _ := api.do(http.MethodPost, "/api/v1/sales", body, "Idempotency-Key", "sale-1")
	assert.Equal(t, http.StatusUnprocessableEntity, reused.Code)
	assert.Equal(t, int64(4), api.stock(productID))
}

func TestPurchaseAndStatement(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 0)

	rec, env := api.do(http.MethodPost, "/api/v1/parties", map[string]any{
		"kind": "supplier",
		"name": "Acme Supplies",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var party struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &party))

	rec, _ = api.do(http.MethodPost, "/api/v1/purchases", map[string]any{
		"party_id":     party.ID,
		"items":        []map[string]any{{"product_id": productID, "quantity": 4, "unit_price": 150}},
		"payment_mode": "cash",
		"cash_paid":    200,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(4), api.stock(productID))

	rec, env = api.do(http.MethodGet, "/api/v1/parties/"+party.ID+"/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance struct {
		Balance int64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &balance))
	assert.Equal(t, int64(400), balance.Balance)

	rec, env = api.do(http.MethodGet, "/api/v1/parties/"+party.ID+"/statement", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var statement struct {
		ClosingBalance int64 `json:"closing_balance"`
		Lines          []struct {
			Debit   int64 `json:"debit"`
			Balance int64 `json:"balance"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &statement))
	require.Len(t, statement.Lines, 1)
	assert.Equal(t, int64(400), statement.Lines[0].Debit)
	assert.Equal(t, int64(400), statement.ClosingBalance)

	rec, env = api.do(http.MethodGet, "/api/v1/parties/"+party.ID+"/statement?from=2026-02-01&to=2026-01-01", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", env.Kind)
}

func TestAdjustmentAndLowStock(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 3)

	rec, env := api.do(http.MethodPost, "/api/v1/stock/adjustments", map[string]any{
		"product_id": productID,
		"quantity":   -2,
		"note":       "damaged",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var adjustment struct {
		NewStock int64 `json:"new_stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &adjustment))
	assert.Equal(t, int64(1), adjustment.NewStock)

	rec, env = api.do(http.MethodGet, "/api/v1/stock/low", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var low []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &low))
	require.Len(t, low, 1)
	assert.Equal(t, productID, low[0].ID)

	rec, env = api.do(http.MethodGet, "/api/v1/products/"+productID+"/movements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Items []struct {
			Quantity int64 `json:"quantity"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history.Items, 2)
}

func TestHeldSaleResumeAndCommit(t *testing.T) {
	api := newTestRouter(t, 100)
	productID := api.createProduct("Widget", 300, 2)

	rec, env := api.do(http.MethodPost, "/api/v1/held-sales", map[string]any{
		"items":         []map[string]any{{"product_id": productID, "quantity": 5}},
		"payment_mode":  "cash",
		"cash_received": 1500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var held struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &held))

	// Not enough stock: the cart is parked again under a new id
	rec, env = api.do(http.MethodPost, "/api/v1/held-sales/"+held.ID+"/resume?commit=true", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "insufficient_stock", env.Kind)

	rec, env = api.do(http.MethodGet, "/api/v1/held-sales", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.NotEqual(t, held.ID, list[0].ID)

	rec, _ = api.do(http.MethodDelete, "/api/v1/held-sales/"+list[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = api.do(http.MethodDelete, "/api/v1/held-sales/"+list[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCashAccounts(t *testing.T) {
	api := newTestRouter(t, 100)

	rec, env := api.do(http.MethodPost, "/api/v1/cash-accounts", map[string]any{
		"code":            "till",
		"name":            "Front till",
		"opening_balance": 2500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var account struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	assert.Equal(t, "TILL", account.Code)

	rec, env = api.do(http.MethodGet, "/api/v1/cash-accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []struct {
		Code    string `json:"code"`
		Balance int64  `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &accounts))
	balances := map[string]int64{}
	for _, a := range accounts {
		balances[a.Code] = a.Balance
	}
	assert.Equal(t, int64(2500), balances["TILL"])

	rec, _ = api.do(http.MethodGet, "/api/v1/cash-accounts/"+account.ID+"/postings", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	api := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		rec, _ := api.do(http.MethodGet, "/api/v1/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, _ := api.do(http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
