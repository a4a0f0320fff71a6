// Package pricing turns cart lines into subtotal, tax and totals. Everything in
// here is a pure function of its input; amounts are integer cents.
package pricing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/posledger/pkg/apperror"
)

// Upper bounds on input so line and document sums stay far inside int64
const (
	MaxQuantity int64 = 1_000_000_000
	MaxAmount   int64 = 1_000_000_000_000_000 // cents
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// Line is one priced cart line
type Line struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice int64
	UnitCost  int64
	Discount  int64
	TaxRate   decimal.Decimal // percentage
}

// Input is a whole cart or purchase order
type Input struct {
	Lines    []Line
	Discount int64 // document-level discount
	// AllowBelowCost disables the unit-cost price floor (returns and purchases)
	AllowBelowCost bool
}

// LineResult is the priced form of one input line
type LineResult struct {
	Index     int       `json:"line"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	UnitCost  int64     `json:"unit_cost"`
	Subtotal  int64     `json:"sub_total"`
	Discount  int64     `json:"discount"`
	Tax       int64     `json:"tax"`
	Total     int64     `json:"total"`
}

// Warning reports a unit price that was raised to the product's unit cost
type Warning struct {
	Line      int       `json:"line"`
	ProductID uuid.UUID `json:"product_id"`
	Requested int64     `json:"requested"`
	Applied   int64     `json:"applied"`
	Message   string    `json:"message"`
}

// Result holds the document totals. Discount is the document discount plus
// every line discount, so Total == Subtotal - Discount + Tax.
type Result struct {
	Lines            []LineResult `json:"lines"`
	Subtotal         int64        `json:"sub_total"`
	LineDiscount     int64        `json:"line_discount"`
	DocumentDiscount int64        `json:"document_discount"`
	Discount         int64        `json:"discount"`
	Tax              int64        `json:"tax"`
	Total            int64        `json:"total"`
	Warnings         []Warning    `json:"warnings,omitempty"`
}

// LineTax returns round(subtotal * rate / 100), halves rounded away from zero
func LineTax(subtotal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(subtotal).Mul(rate).Div(hundred).Round(0).IntPart()
}

// Calculate prices every line and totals the document. It never mutates in.
func Calculate(in Input) (*Result, error) {
	var fieldErrors []apperror.FieldError
	addErr := func(field, format string, args ...interface{}) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if len(in.Lines) == 0 {
		addErr("items", "at least one line is required")
	}
	if in.Discount < 0 {
		addErr("discount", "must not be negative")
	} else if in.Discount > MaxAmount {
		addErr("discount", "must be at most %d", MaxAmount)
	}

	res := &Result{
		Lines:            make([]LineResult, 0, len(in.Lines)),
		DocumentDiscount: in.Discount,
	}

	for i, line := range in.Lines {
		field := fmt.Sprintf("items[%d]", i)
		if line.Quantity <= 0 {
			addErr(field+".quantity", "must be greater than zero, got %d", line.Quantity)
			continue
		}
		if line.Quantity > MaxQuantity {
			addErr(field+".quantity", "must be at most %d, got %d", MaxQuantity, line.Quantity)
			continue
		}
		if line.UnitPrice < 0 || line.UnitPrice > MaxAmount {
			addErr(field+".unit_price", "must be between 0 and %d", MaxAmount)
			continue
		}
		if line.Discount < 0 || line.Discount > MaxAmount {
			addErr(field+".discount", "must be between 0 and %d", MaxAmount)
			continue
		}
		if line.TaxRate.IsNegative() || line.TaxRate.GreaterThan(hundred) {
			addErr(field+".tax_rate", "must be between 0 and 100, got %s", line.TaxRate.String())
			continue
		}

		price := line.UnitPrice
		if !in.AllowBelowCost && price < line.UnitCost {
			res.Warnings = append(res.Warnings, Warning{
				Line:      i,
				ProductID: line.ProductID,
				Requested: price,
				Applied:   line.UnitCost,
				Message:   fmt.Sprintf("unit price %d is below unit cost %d and was raised to cost", price, line.UnitCost),
			})
			price = line.UnitCost
		}

		amount := decimal.NewFromInt(line.Quantity).Mul(decimal.NewFromInt(price))
		if amount.GreaterThan(maxAmount) {
			addErr(field, "line amount %s exceeds the limit of %d", amount.String(), MaxAmount)
			continue
		}
		subtotal := amount.IntPart()
		if line.Discount > subtotal {
			addErr(field+".discount", "discount %d exceeds line amount %d", line.Discount, subtotal)
			continue
		}
		tax := LineTax(subtotal, line.TaxRate)

		res.Lines = append(res.Lines, LineResult{
			Index:     i,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: price,
			UnitCost:  line.UnitCost,
			Subtotal:  subtotal,
			Discount:  line.Discount,
			Tax:       tax,
			Total:     subtotal - line.Discount + tax,
		})
		res.Subtotal += subtotal
		res.LineDiscount += line.Discount
		res.Tax += tax
		if res.Subtotal > MaxAmount || res.Tax > MaxAmount {
			addErr("items", "document amount exceeds the limit of %d", MaxAmount)
			break
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	res.Discount = res.LineDiscount + res.DocumentDiscount
	res.Total = res.Subtotal - res.Discount + res.Tax
	if res.Total < 0 {
		return nil, apperror.NewFieldError("discount", fmt.Sprintf("document discount %d exceeds the amount due", in.Discount))
	}
	return res, nil
}
