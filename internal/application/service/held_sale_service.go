package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/apperror"
)

// HeldSaleService parks and resumes carts. Held carts have no stock, ledger or
// cash effect until they are committed as a sale.
type HeldSaleService struct {
	uow      repository.UnitOfWork
	heldRepo repository.HeldSaleRepository
}

// NewHeldSaleService creates a new held sale service
func NewHeldSaleService(uow repository.UnitOfWork, heldRepo repository.HeldSaleRepository) *HeldSaleService {
	return &HeldSaleService{
		uow:      uow,
		heldRepo: heldRepo,
	}
}

// HoldSaleInput is a cart as the cashier left it
type HoldSaleInput struct {
	PartyID      *uuid.UUID
	Items        []entity.HeldSaleItem
	Discount     int64
	PaymentMode  enum.PaymentMode
	CashReceived int64
	Note         string
}

// Hold stores the cart as-is; it is validated when it is resumed and committed
func (s *HeldSaleService) Hold(ctx context.Context, input *HoldSaleInput) (*entity.HeldSale, error) {
	held := &entity.HeldSale{
		PartyID:      input.PartyID,
		Items:        input.Items,
		Discount:     input.Discount,
		PaymentMode:  input.PaymentMode,
		CashReceived: input.CashReceived,
		Note:         input.Note,
	}
	if held.Items == nil {
		held.Items = []entity.HeldSaleItem{}
	}
	if err := s.heldRepo.Create(ctx, held); err != nil {
		return nil, err
	}
	return held, nil
}

// Resume loads and removes the held cart in one transaction so two tills
// cannot resume the same cart.
func (s *HeldSaleService) Resume(ctx context.Context, id uuid.UUID) (*entity.HeldSale, error) {
	var held *entity.HeldSale
	err := s.uow.Execute(ctx, func(repos repository.TransactionalRepositories) error {
		found, err := repos.HeldSales().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NewNotFoundError("Held sale")
		}
		removed, err := repos.HeldSales().Delete(ctx, id)
		if err != nil {
			return err
		}
		if removed == 0 {
			return apperror.NewNotFoundError("Held sale")
		}
		held = found
		return nil
	})
	if err != nil {
		return nil, commitError("held sale resume", err)
	}
	return held, nil
}

// Delete discards a held cart
func (s *HeldSaleService) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.heldRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return apperror.NewNotFoundError("Held sale")
	}
	return nil
}

// List returns every held cart, newest first
func (s *HeldSaleService) List(ctx context.Context) ([]entity.HeldSale, error) {
	return s.heldRepo.List(ctx)
}

// SaleInputFromHeld turns a resumed cart into a sale request
func SaleInputFromHeld(held *entity.HeldSale) *CreateSaleInput {
	items := make([]LineItemInput, 0, len(held.Items))
	for _, item := range held.Items {
		line := LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Discount:  item.Discount,
		}
		// Zero means the cashier never overrode the catalog price
		if item.UnitPrice > 0 {
			price := item.UnitPrice
			line.UnitPrice = &price
		}
		items = append(items, line)
	}

	mode := held.PaymentMode
	if mode == "" {
		mode = enum.PaymentModeCash
	}
	return &CreateSaleInput{
		PartyID:      held.PartyID,
		Items:        items,
		Discount:     held.Discount,
		PaymentMode:  mode,
		CashReceived: held.CashReceived,
		Note:         held.Note,
	}
}
