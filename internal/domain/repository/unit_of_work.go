package repository

import "context"

// UnitOfWork runs a function inside one database transaction. If fn returns an
// error everything it wrote is rolled back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to the current transaction
type TransactionalRepositories interface {
	Products() ProductRepository
	Parties() PartyRepository
	Movements() MovementRepository
	Ledger() LedgerRepository
	Cash() CashRepository
	Sales() SaleRepository
	Purchases() PurchaseRepository
	HeldSales() HeldSaleRepository
	Sequences() SequenceRepository
}
