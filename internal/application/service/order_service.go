package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/application/pricing"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/infrastructure/lock"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	infraRepo "github.com/sangkips/posledger/internal/infrastructure/repository"
	"github.com/sangkips/posledger/pkg/apperror"
	"go.uber.org/zap"
)

// OrderService commits sales, purchases and stock adjustments. Every operation
// validates and prices outside the transaction, then takes the key locks and
// performs its stock and cash checks and all writes in one unit of work.
type OrderService struct {
	uow         repository.UnitOfWork
	productRepo repository.ProductRepository
	partyRepo   repository.PartyRepository
	cashRepo    repository.CashRepository
	saleRepo    repository.SaleRepository
	purchRepo   repository.PurchaseRepository
	locker      lock.KeyLocker
	opts        LedgerOptions
	logger      *zap.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	uow repository.UnitOfWork,
	productRepo repository.ProductRepository,
	partyRepo repository.PartyRepository,
	cashRepo repository.CashRepository,
	saleRepo repository.SaleRepository,
	purchRepo repository.PurchaseRepository,
	locker lock.KeyLocker,
	opts LedgerOptions,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		uow:         uow,
		productRepo: productRepo,
		partyRepo:   partyRepo,
		cashRepo:    cashRepo,
		saleRepo:    saleRepo,
		purchRepo:   purchRepo,
		locker:      locker,
		opts:        opts,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LineItemInput is one requested document line. A nil UnitPrice takes the
// product's sale price for sales and its unit cost for purchases.
type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int64  `validate:"gt=0,lte=1000000000"`
	UnitPrice *int64 `validate:"omitempty,gte=0,lte=1000000000000000"`
	Discount  int64  `validate:"gte=0,lte=1000000000000000"`
}

// CreateSaleInput represents a sale or sale return request
type CreateSaleInput struct {
	PartyID      *uuid.UUID
	Items        []LineItemInput  `validate:"required,min=1,dive"`
	Discount     int64            `validate:"gte=0,lte=1000000000000000"`
	PaymentMode  enum.PaymentMode `validate:"required"`
	CashReceived int64            `validate:"gte=0,lte=1000000000000000"`
	IsReturn     bool
	AccountCode  string `validate:"max=50"`
	Date         *time.Time
	Note         string `validate:"max=1000"`
}

// CreatePurchaseInput represents a purchase or purchase return request
type CreatePurchaseInput struct {
	PartyID     uuid.UUID
	Items       []LineItemInput  `validate:"required,min=1,dive"`
	Discount    int64            `validate:"gte=0,lte=1000000000000000"`
	PaymentMode enum.PaymentMode `validate:"required"`
	CashPaid    int64            `validate:"gte=0,lte=1000000000000000"`
	IsReturn    bool
	AccountCode string `validate:"max=50"`
	Date        *time.Time
	Note        string `validate:"max=1000"`
}

// AdjustStockInput represents a manual stock correction
type AdjustStockInput struct {
	ProductID uuid.UUID
	Quantity  int64  `validate:"ne=0,gte=-1000000000,lte=1000000000"`
	Note      string `validate:"max=1000"`
}

// SaleResult is a committed sale
type SaleResult struct {
	Sale            *entity.Sale      `json:"sale"`
	Change          int64             `json:"change"`
	NewPartyBalance *int64            `json:"new_party_balance,omitempty"`
	Warnings        []pricing.Warning `json:"warnings,omitempty"`
}

// PurchaseResult is a committed purchase
type PurchaseResult struct {
	Purchase        *entity.Purchase  `json:"purchase"`
	Change          int64             `json:"change"`
	NewPartyBalance *int64            `json:"new_party_balance,omitempty"`
	Warnings        []pricing.Warning `json:"warnings,omitempty"`
}

// AdjustmentResult is a committed stock adjustment
type AdjustmentResult struct {
	Movement *entity.InventoryMovement `json:"movement"`
	NewStock int64                     `json:"new_stock"`
}

// documentDraft is a validated and priced document waiting to be committed
type documentDraft struct {
	id        uuid.UUID
	docType   enum.DocumentType
	kind      enum.MovementKind
	sequence  string
	label     string
	isReturn  bool
	party     *entity.Party
	account   *entity.CashAccount
	mode      enum.PaymentMode
	received  int64
	date      time.Time
	priced    *pricing.Result
	products  map[uuid.UUID]*entity.Product
	cashSign  int64 // +1 money comes in, -1 money goes out
	cashGated bool  // outgoing cash must be covered by the account balance
}

// committed is what the unit of work reports back
type committed struct {
	number     string
	settlement settlement
	balance    *int64
}

// CreateSale validates, prices and commits a sale or sale return
func (s *OrderService) CreateSale(ctx context.Context, input *CreateSaleInput) (*SaleResult, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if !input.PaymentMode.IsValid() {
		return nil, apperror.NewFieldError("payment_mode", fmt.Sprintf("unsupported payment mode %q", input.PaymentMode))
	}

	party, err := s.resolveParty(ctx, input.PartyID, enum.PartyKindCustomer)
	if err != nil {
		return nil, err
	}

	received := input.CashReceived
	if input.PaymentMode.IsCredit() {
		if !party.TracksBalance() {
			return nil, apperror.NewFieldError("payment_mode", "credit is not available to walk-in customers")
		}
		received = 0
	}

	products, err := s.loadProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(input.Items))
	for i, item := range input.Items {
		product := products[item.ProductID]
		price := product.SalePrice
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		lines[i] = pricing.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
			UnitCost:  product.UnitCost,
			Discount:  item.Discount,
			TaxRate:   product.TaxRate,
		}
	}
	priced, err := pricing.Calculate(pricing.Input{
		Lines:          lines,
		Discount:       input.Discount,
		AllowBelowCost: input.IsReturn,
	})
	if err != nil {
		return nil, err
	}

	account, err := s.resolveAccount(ctx, input.PaymentMode, input.AccountCode)
	if err != nil {
		return nil, err
	}

	draft := &documentDraft{
		docType:  enum.DocumentTypeSale,
		kind:     enum.MovementKindSale,
		sequence: infraRepo.SequenceSale,
		label:    "Sale",
		isReturn: input.IsReturn,
		party:    party,
		account:  account,
		mode:     input.PaymentMode,
		received: received,
		date:     s.documentDate(input.Date),
		priced:   priced,
		products: products,
		cashSign: 1,
	}
	if input.IsReturn {
		draft.kind = enum.MovementKindSaleReturn
		draft.sequence = infraRepo.SequenceSaleReturn
		draft.label = "Sale return"
		draft.cashSign = -1
		draft.cashGated = true
	}

	var done *committed
	err = withRetry(ctx, s.log(ctx), s.opts, "create_sale", func() error {
		draft.id = uuid.New()
		var txErr error
		done, txErr = s.commit(ctx, draft, func(repos repository.TransactionalRepositories, c *committed) error {
			return repos.Sales().Create(ctx, buildSale(draft, c, input.Note))
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.GetWithItems(ctx, draft.id)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("sale committed",
		zap.String("invoice_no", done.number),
		zap.Bool("is_return", input.IsReturn),
		zap.Int64("total", priced.Total),
		zap.Int64("change", done.settlement.Change),
	)

	return &SaleResult{
		Sale:            sale,
		Change:          done.settlement.Change,
		NewPartyBalance: done.balance,
		Warnings:        priced.Warnings,
	}, nil
}

// CreatePurchase validates, prices and commits a purchase or purchase return
func (s *OrderService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*PurchaseResult, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if !input.PaymentMode.IsValid() {
		return nil, apperror.NewFieldError("payment_mode", fmt.Sprintf("unsupported payment mode %q", input.PaymentMode))
	}
	if input.PartyID == uuid.Nil {
		return nil, apperror.NewFieldError("party_id", "is required")
	}

	party, err := s.resolveParty(ctx, &input.PartyID, enum.PartyKindSupplier)
	if err != nil {
		return nil, err
	}

	paid := input.CashPaid
	if input.PaymentMode.IsCredit() {
		if !party.TracksBalance() {
			return nil, apperror.NewFieldError("payment_mode", "credit is not available to walk-in suppliers")
		}
		paid = 0
	}

	products, err := s.loadProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, len(input.Items))
	for i, item := range input.Items {
		product := products[item.ProductID]
		cost := product.UnitCost
		if item.UnitPrice != nil {
			cost = *item.UnitPrice
		}
		lines[i] = pricing.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: cost,
			UnitCost:  cost,
			Discount:  item.Discount,
			TaxRate:   product.TaxRate,
		}
	}
	priced, err := pricing.Calculate(pricing.Input{
		Lines:          lines,
		Discount:       input.Discount,
		AllowBelowCost: true,
	})
	if err != nil {
		return nil, err
	}

	account, err := s.resolveAccount(ctx, input.PaymentMode, input.AccountCode)
	if err != nil {
		return nil, err
	}

	draft := &documentDraft{
		docType:  enum.DocumentTypePurchase,
		kind:     enum.MovementKindPurchase,
		sequence: infraRepo.SequencePurchase,
		label:    "Purchase",
		isReturn: input.IsReturn,
		party:    party,
		account:  account,
		mode:     input.PaymentMode,
		received: paid,
		date:     s.documentDate(input.Date),
		priced:   priced,
		products: products,
		cashSign: -1,
	}
	if input.IsReturn {
		draft.kind = enum.MovementKindPurchaseReturn
		draft.sequence = infraRepo.SequencePurchaseReturn
		draft.label = "Purchase return"
		// A supplier refund only brings cash in, so the till is never checked
		draft.cashSign = 1
	}

	var done *committed
	err = withRetry(ctx, s.log(ctx), s.opts, "create_purchase", func() error {
		draft.id = uuid.New()
		var txErr error
		done, txErr = s.commit(ctx, draft, func(repos repository.TransactionalRepositories, c *committed) error {
			return repos.Purchases().Create(ctx, buildPurchase(draft, c, input.Note))
		})
		return txErr
	})
	if err != nil {
		return nil, err
	}

	purchase, err := s.purchRepo.GetWithItems(ctx, draft.id)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("purchase committed",
		zap.String("purchase_no", done.number),
		zap.Bool("is_return", input.IsReturn),
		zap.Int64("total", priced.Total),
	)

	return &PurchaseResult{
		Purchase:        purchase,
		Change:          done.settlement.Change,
		NewPartyBalance: done.balance,
		Warnings:        priced.Warnings,
	}, nil
}

// AdjustStock records a signed correction for one product
func (s *OrderService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*AdjustmentResult, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.ProductID == uuid.Nil {
		return nil, apperror.NewFieldError("product_id", "is required")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	var (
		movement *entity.InventoryMovement
		newStock int64
	)
	err = withRetry(ctx, s.log(ctx), s.opts, "adjust_stock", func() error {
		release, err := s.locker.Lock(ctx, lock.ProductKey(product.ID))
		if err != nil {
			return commitError("stock adjustment", err)
		}
		defer release()

		err = s.uow.Execute(ctx, func(repos repository.TransactionalRepositories) error {
			if _, err := repos.Products().LockByIDs(ctx, []uuid.UUID{product.ID}); err != nil {
				return err
			}
			stock, err := repos.Movements().CurrentStock(ctx, product.ID)
			if err != nil {
				return err
			}
			if stock+input.Quantity < 0 && !s.opts.AllowNegativeStock {
				return apperror.NewInsufficientStockError(product.ID.String(), product.Name, -input.Quantity, stock)
			}

			id := uuid.New()
			movement = &entity.InventoryMovement{
				ID:           id,
				ProductID:    product.ID,
				Quantity:     input.Quantity,
				UnitCost:     product.UnitCost,
				Kind:         enum.MovementKindAdjustment,
				DocumentType: enum.DocumentTypeAdjustment,
				DocumentRef:  &id,
				Note:         input.Note,
			}
			if err := repos.Movements().Create(ctx, movement); err != nil {
				return err
			}
			newStock = stock + input.Quantity
			return nil
		})
		return commitError("stock adjustment", err)
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.Int64("quantity", input.Quantity),
		zap.Int64("new_stock", newStock),
	)
	return &AdjustmentResult{Movement: movement, NewStock: newStock}, nil
}

// commit takes the key locks and writes every effect of the draft in one
// transaction. createHeader persists the sale or purchase row.
func (s *OrderService) commit(
	ctx context.Context,
	draft *documentDraft,
	createHeader func(repos repository.TransactionalRepositories, c *committed) error,
) (*committed, error) {
	release, err := s.locker.Lock(ctx, draft.lockKeys()...)
	if err != nil {
		return nil, commitError(draft.label, err)
	}
	defer release()

	result := &committed{}
	err = s.uow.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		quantities := draft.quantities()
		productIDs := sortedIDs(quantities)

		if _, err := repos.Products().LockByIDs(ctx, productIDs); err != nil {
			return err
		}

		if draft.kind.Direction() < 0 && !s.opts.AllowNegativeStock {
			for _, id := range productIDs {
				available, err := repos.Movements().CurrentStock(ctx, id)
				if err != nil {
					return err
				}
				if quantities[id] > available {
					return apperror.NewInsufficientStockError(id.String(), draft.products[id].Name, quantities[id], available)
				}
			}
		}

		tracked := draft.party.TracksBalance()
		var prior int64
		if tracked {
			if _, err := repos.Parties().LockByID(ctx, draft.party.ID); err != nil {
				return err
			}
			entries, err := repos.Ledger().ListByParty(ctx, draft.party.ID, nil)
			if err != nil {
				return err
			}
			prior = foldBalance(draft.party.OpeningBalance, entries)
		}

		var st settlement
		if draft.isReturn {
			st = settleReturn(draft.priced.Total, draft.mode.IsCredit())
		} else {
			paid, err := settlePayment(draft.priced.Total, draft.received, prior, tracked)
			if err != nil {
				return err
			}
			st = paid
		}
		result.settlement = st

		cashAmount := draft.cashSign * st.Cash
		if cashAmount != 0 {
			if draft.account == nil {
				return apperror.NewFieldError("payment_mode", "a cash account is required for this payment")
			}
			if _, err := repos.Cash().LockAccount(ctx, draft.account.ID); err != nil {
				return err
			}
			if draft.cashGated && cashAmount < 0 {
				sum, err := repos.Cash().SumPostings(ctx, draft.account.ID)
				if err != nil {
					return err
				}
				available := draft.account.OpeningBalance + sum
				if available < -cashAmount {
					return apperror.NewInsufficientCashError(draft.account.ID.String(), draft.account.Code, -cashAmount, available)
				}
			}
		}

		number, err := repos.Sequences().Next(ctx, draft.sequence)
		if err != nil {
			return err
		}
		result.number = number

		if err := createHeader(repos, result); err != nil {
			return err
		}

		if err := repos.Movements().CreateBatch(ctx, draft.movements()); err != nil {
			return err
		}

		if tracked {
			entries := draft.ledgerEntries(number, st)
			for i := range entries {
				if err := repos.Ledger().Create(ctx, &entries[i]); err != nil {
					return err
				}
			}
			balance := prior + st.Debit - st.Credit
			result.balance = &balance
		}

		if cashAmount != 0 {
			posting := &entity.CashPosting{
				AccountID:    draft.account.ID,
				Amount:       cashAmount,
				DocumentType: draft.docType,
				DocumentRef:  &draft.id,
				Description:  fmt.Sprintf("%s %s", draft.label, number),
			}
			if err := repos.Cash().CreatePosting(ctx, posting); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, commitError(draft.label, err)
	}
	return result, nil
}

func (s *OrderService) resolveParty(ctx context.Context, id *uuid.UUID, kind enum.PartyKind) (*entity.Party, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil
	}
	party, err := s.partyRepo.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, apperror.NewNotFoundError("Party")
	}
	if party.Kind != kind {
		return nil, apperror.NewFieldError("party_id", fmt.Sprintf("party is a %s, expected a %s", party.Kind, kind))
	}
	return party, nil
}

// resolveAccount picks the account money moves through. Credit needs none.
func (s *OrderService) resolveAccount(ctx context.Context, mode enum.PaymentMode, code string) (*entity.CashAccount, error) {
	if mode.IsCredit() {
		return nil, nil
	}
	if code == "" {
		code = s.opts.CashAccountCode
		if mode == enum.PaymentModeBank || mode == enum.PaymentModeCard {
			code = s.opts.BankAccountCode
		}
	}
	account, err := s.cashRepo.GetAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Cash account %s", code))
	}
	return account, nil
}

// loadProducts batch fetches every product referenced by items
func (s *OrderService) loadProducts(ctx context.Context, items []LineItemInput) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", id))
		}
	}
	return byID, nil
}

func (s *OrderService) documentDate(date *time.Time) time.Time {
	if date != nil && !date.IsZero() {
		return date.UTC()
	}
	return s.now()
}

func (s *OrderService) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}

func (d *documentDraft) lockKeys() []string {
	keys := make([]string, 0, len(d.products)+2)
	for id := range d.products {
		keys = append(keys, lock.ProductKey(id))
	}
	if d.party.TracksBalance() {
		keys = append(keys, lock.PartyKey(d.party.ID))
	}
	if d.account != nil {
		keys = append(keys, lock.AccountKey(d.account.ID))
	}
	return keys
}

// quantities aggregates line quantities per product
func (d *documentDraft) quantities() map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(d.priced.Lines))
	for _, line := range d.priced.Lines {
		out[line.ProductID] += line.Quantity
	}
	return out
}

func (d *documentDraft) movements() []entity.InventoryMovement {
	direction := d.kind.Direction()
	movements := make([]entity.InventoryMovement, 0, len(d.priced.Lines))
	for _, line := range d.priced.Lines {
		cost := line.UnitCost
		if d.docType == enum.DocumentTypePurchase {
			cost = line.UnitPrice
		}
		movements = append(movements, entity.InventoryMovement{
			ProductID:    line.ProductID,
			Quantity:     direction * line.Quantity,
			UnitCost:     cost,
			Kind:         d.kind,
			DocumentType: d.docType,
			DocumentRef:  &d.id,
		})
	}
	return movements
}

func (d *documentDraft) ledgerEntries(number string, st settlement) []entity.LedgerEntry {
	var entries []entity.LedgerEntry
	if st.Debit > 0 {
		entries = append(entries, entity.LedgerEntry{
			PartyID:      d.party.ID,
			Date:         d.date,
			Debit:        st.Debit,
			DocumentType: d.docType,
			DocumentRef:  &d.id,
			Description:  fmt.Sprintf("%s %s amount due", d.label, number),
		})
	}
	if st.Credit > 0 {
		description := fmt.Sprintf("Payment with %s %s", d.label, number)
		if d.isReturn {
			description = fmt.Sprintf("%s %s credited", d.label, number)
		}
		entries = append(entries, entity.LedgerEntry{
			PartyID:      d.party.ID,
			Date:         d.date,
			Credit:       st.Credit,
			DocumentType: d.docType,
			DocumentRef:  &d.id,
			Description:  description,
		})
	}
	return entries
}

func buildSale(d *documentDraft, c *committed, note string) *entity.Sale {
	sale := &entity.Sale{
		ID:          d.id,
		InvoiceNo:   c.number,
		Date:        d.date,
		IsReturn:    d.isReturn,
		Status:      enum.DocumentStatusCompleted,
		PaymentMode: d.mode,
		SubTotal:    d.priced.Subtotal,
		Discount:    d.priced.Discount,
		Tax:         d.priced.Tax,
		Total:       d.priced.Total,
		Paid:        c.settlement.Paid,
		Due:         c.settlement.Due,
		Change:      c.settlement.Change,
		Collected:   c.settlement.Collected,
		Note:        note,
	}
	if d.party != nil {
		sale.PartyID = &d.party.ID
	}
	if d.account != nil {
		sale.AccountID = &d.account.ID
	}
	for _, line := range d.priced.Lines {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID: line.ProductID,
			Line:      line.Index + 1,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  line.UnitCost,
			Discount:  line.Discount,
			Tax:       line.Tax,
			Total:     line.Total,
		})
	}
	return sale
}

func buildPurchase(d *documentDraft, c *committed, note string) *entity.Purchase {
	purchase := &entity.Purchase{
		ID:          d.id,
		PurchaseNo:  c.number,
		Date:        d.date,
		IsReturn:    d.isReturn,
		Status:      enum.DocumentStatusCompleted,
		PaymentMode: d.mode,
		SubTotal:    d.priced.Subtotal,
		Discount:    d.priced.Discount,
		Tax:         d.priced.Tax,
		Total:       d.priced.Total,
		Paid:        c.settlement.Paid,
		Due:         c.settlement.Due,
		Change:      c.settlement.Change,
		Collected:   c.settlement.Collected,
		Note:        note,
	}
	if d.party != nil {
		purchase.PartyID = &d.party.ID
	}
	if d.account != nil {
		purchase.AccountID = &d.account.ID
	}
	for _, line := range d.priced.Lines {
		purchase.Items = append(purchase.Items, entity.PurchaseItem{
			ProductID: line.ProductID,
			Line:      line.Index + 1,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitPrice,
			Discount:  line.Discount,
			Tax:       line.Tax,
			Total:     line.Total,
		})
	}
	return purchase
}

func sortedIDs(set map[uuid.UUID]int64) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
