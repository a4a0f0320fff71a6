package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is catalog reference data. It deliberately carries no stock counter:
// stock is always the sum of the product's surviving inventory movements.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	SKU       string          `gorm:"size:100;uniqueIndex;not null" json:"sku"`
	UnitCost  int64           `gorm:"default:0" json:"unit_cost"`  // Stored in cents
	SalePrice int64           `gorm:"default:0" json:"sale_price"` // Stored in cents
	MinStock  int64           `gorm:"default:0" json:"min_stock"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"` // Percentage, e.g. 16.00
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the given derived stock is at or below the alert threshold
func (p *Product) IsLowStock(currentStock int64) bool {
	return currentStock <= p.MinStock
}

// ProductStock pairs a product with its derived stock level
type ProductStock struct {
	Product
	Stock    int64 `json:"stock"`
	LowStock bool  `json:"low_stock"`
}
