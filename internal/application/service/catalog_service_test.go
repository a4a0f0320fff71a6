package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_Create(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.Products.Create(env.ctx, &CreateProductInput{
		Name:         "  Sugar 1kg ",
		SKU:          "SUG-1",
		UnitCost:     120,
		SalePrice:    150,
		MinStock:     5,
		TaxRate:      decimal.NewFromInt(16),
		OpeningStock: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sugar 1kg", created.Name)
	assert.Equal(t, int64(4), created.Stock)
	assert.True(t, created.LowStock)
	assert.Equal(t, int64(1), env.count(&entity.InventoryMovement{}))

	fetched, err := env.Products.Get(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), fetched.Stock)

	_, err = env.Products.Create(env.ctx, &CreateProductInput{Name: "Other", SKU: "SUG-1"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = env.Products.Create(env.ctx, &CreateProductInput{Name: "Bad", SKU: "BAD-1", TaxRate: decimal.NewFromInt(101)})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = env.Products.Create(env.ctx, &CreateProductInput{Name: "Bad", SKU: "BAD-2", OpeningStock: -1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestProductService_ListCarriesStock(t *testing.T) {
	env := newTestEnv(t)
	env.product("Apple", 10, 20, 7)
	env.product("Banana", 10, 20, 0)

	page, err := env.Products.List(env.ctx, &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		SortBy:     "name",
		SortOrder:  "asc",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(2), page.Pagination.Total)

	stock := map[string]int64{}
	for _, item := range page.Items {
		stock[item.Name] = item.Stock
	}
	assert.Equal(t, map[string]int64{"Apple": 7, "Banana": 0}, stock)
}

func TestStockService_LevelsAndLowStock(t *testing.T) {
	env := newTestEnv(t)
	apple := env.product("Apple", 10, 20, 7)
	env.product("Banana", 10, 20, 1)

	_, err := env.Orders.AdjustStock(env.ctx, &AdjustStockInput{ProductID: apple.ID, Quantity: -1, Note: "bruised"})
	require.NoError(t, err)

	levels, err := env.Stock.StockLevels(env.ctx)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "Apple", levels[0].Name)
	assert.Equal(t, int64(6), levels[0].Stock)

	low, err := env.Stock.LowStock(env.ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Banana", low[0].Name)

	history, err := env.Stock.History(env.ctx, apple.ID, nil)
	require.NoError(t, err)
	require.Len(t, history.Items, 2)

	var sum int64
	for _, m := range history.Items {
		sum += m.Quantity
	}
	assert.Equal(t, int64(6), sum)
}

func TestPartyService(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Parties.Create(env.ctx, &CreatePartyInput{
		Kind:           enum.PartyKindCustomer,
		Name:           "Counter",
		IsWalkIn:       true,
		OpeningBalance: 100,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = env.Parties.Create(env.ctx, &CreatePartyInput{Kind: "employee", Name: "Zed"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	bad := "not-an-email"
	_, err = env.Parties.Create(env.ctx, &CreatePartyInput{Kind: enum.PartyKindSupplier, Name: "Acme", Email: &bad})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	supplier := env.party(enum.PartyKindSupplier, "Acme", 250)
	balance, err := env.Parties.Balance(env.ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), balance.Balance)

	kind := enum.PartyKindSupplier
	page, err := env.Parties.List(env.ctx, &repository.PartyFilterParams{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, supplier.ID, page.Items[0].ID)
}

func TestCashService(t *testing.T) {
	env := newTestEnv(t)
	till := env.account("till", 500)
	assert.Equal(t, "TILL", till.Code)

	_, err := env.Cash.CreateAccount(env.ctx, &CreateAccountInput{Code: "Till", Name: "Again"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = env.Cash.CreateAccount(env.ctx, &CreateAccountInput{Code: "NEG", Name: "Negative", OpeningBalance: -1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	widget := env.product("Widget", 100, 300, 3)
	_, err = env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 2)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 600,
		AccountCode:  "TILL",
	})
	require.NoError(t, err)

	balance, err := env.Cash.Balance(env.ctx, till.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), balance.Balance)

	postings, err := env.Cash.Postings(env.ctx, till.ID, nil)
	require.NoError(t, err)
	require.Len(t, postings.Items, 1)
	assert.Equal(t, int64(600), postings.Items[0].Amount)

	accounts, err := env.Cash.ListAccounts(env.ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestDocumentService_Filters(t *testing.T) {
	env := newTestEnv(t)
	widget := env.product("Widget", 100, 300, 5)

	_, err := env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:        []LineItemInput{line(widget.ID, 1)},
		PaymentMode:  enum.PaymentModeCash,
		CashReceived: 300,
	})
	require.NoError(t, err)
	_, err = env.Orders.CreateSale(env.ctx, &CreateSaleInput{
		Items:       []LineItemInput{line(widget.ID, 1)},
		PaymentMode: enum.PaymentModeCash,
		IsReturn:    true,
	})
	require.NoError(t, err)

	returns := true
	page, err := env.Documents.ListSales(env.ctx, &repository.DocumentFilterParams{IsReturn: &returns})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].IsReturn)

	all, err := env.Documents.ListSales(env.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = env.Documents.GetPurchase(env.ctx, page.Items[0].ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
