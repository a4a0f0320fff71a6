package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/infrastructure/lock"
	infraRepo "github.com/sangkips/posledger/internal/infrastructure/repository"
	"github.com/sangkips/posledger/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv wires every service against a private SQLite database
type testEnv struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB

	Orders    *OrderService
	Reversals *ReversalService
	Stock     *StockService
	Ledger    *LedgerService
	Cash      *CashService
	Held      *HeldSaleService
	Products  *ProductService
	Parties   *PartyService
	Documents *DocumentService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithOptions(t, DefaultLedgerOptions())
}

func newTestEnvWithOptions(t *testing.T, opts LedgerOptions) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	log := zap.NewNop()
	locker := lock.NewLocalLocker()
	uow := infraRepo.NewUnitOfWork(db)

	productRepo := infraRepo.NewProductRepository(db)
	partyRepo := infraRepo.NewPartyRepository(db)
	movementRepo := infraRepo.NewMovementRepository(db)
	ledgerRepo := infraRepo.NewLedgerRepository(db)
	cashRepo := infraRepo.NewCashRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	purchaseRepo := infraRepo.NewPurchaseRepository(db)
	heldRepo := infraRepo.NewHeldSaleRepository(db)

	return &testEnv{
		t:         t,
		ctx:       context.Background(),
		db:        db,
		Orders:    NewOrderService(uow, productRepo, partyRepo, cashRepo, saleRepo, purchaseRepo, locker, opts, log),
		Reversals: NewReversalService(uow, saleRepo, purchaseRepo, movementRepo, locker, opts, log),
		Stock:     NewStockService(productRepo, movementRepo),
		Ledger:    NewLedgerService(partyRepo, ledgerRepo),
		Cash:      NewCashService(cashRepo),
		Held:      NewHeldSaleService(uow, heldRepo),
		Products:  NewProductService(uow, productRepo, movementRepo),
		Parties:   NewPartyService(partyRepo, ledgerRepo),
		Documents: NewDocumentService(saleRepo, purchaseRepo),
	}
}

func (e *testEnv) product(name string, unitCost, salePrice, openingStock int64) *entity.Product {
	e.t.Helper()
	created, err := e.Products.Create(e.ctx, &CreateProductInput{
		Name:         name,
		SKU:          "SKU-" + uuid.NewString()[:8],
		UnitCost:     unitCost,
		SalePrice:    salePrice,
		MinStock:     2,
		TaxRate:      decimal.Zero,
		OpeningStock: openingStock,
	})
	require.NoError(e.t, err)
	return &created.Product
}

func (e *testEnv) party(kind enum.PartyKind, name string, openingBalance int64) *entity.Party {
	e.t.Helper()
	party, err := e.Parties.Create(e.ctx, &CreatePartyInput{
		Kind:           kind,
		Name:           name,
		OpeningBalance: openingBalance,
	})
	require.NoError(e.t, err)
	return party
}

func (e *testEnv) account(code string, openingBalance int64) *entity.CashAccount {
	e.t.Helper()
	account, err := e.Cash.CreateAccount(e.ctx, &CreateAccountInput{
		Code:           code,
		Name:           code + " till",
		OpeningBalance: openingBalance,
	})
	require.NoError(e.t, err)
	return account
}

func (e *testEnv) stock(productID uuid.UUID) int64 {
	e.t.Helper()
	level, err := e.Stock.CurrentStock(e.ctx, productID)
	require.NoError(e.t, err)
	return level.Stock
}

func (e *testEnv) balance(partyID uuid.UUID) int64 {
	e.t.Helper()
	balance, err := e.Ledger.RunningBalance(e.ctx, partyID, nil)
	require.NoError(e.t, err)
	return balance
}

func (e *testEnv) cash(code string) int64 {
	e.t.Helper()
	var account entity.CashAccount
	require.NoError(e.t, e.db.Where("code = ?", code).First(&account).Error)
	balance, err := e.Cash.Balance(e.ctx, account.ID)
	require.NoError(e.t, err)
	return balance.Balance
}

func (e *testEnv) count(model interface{}) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(model).Count(&n).Error)
	return n
}

func line(productID uuid.UUID, quantity int64) LineItemInput {
	return LineItemInput{ProductID: productID, Quantity: quantity}
}

func pricedLine(productID uuid.UUID, quantity, unitPrice int64) LineItemInput {
	return LineItemInput{ProductID: productID, Quantity: quantity, UnitPrice: &unitPrice}
}
