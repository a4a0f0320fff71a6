package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request. Money is in cents.
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	SKU          string          `json:"sku" binding:"required,max=100"`
	UnitCost     int64           `json:"unit_cost"`
	SalePrice    int64           `json:"sale_price"`
	MinStock     int64           `json:"min_stock"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	OpeningStock int64           `json:"opening_stock"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// PageRequest carries plain pagination parameters
type PageRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}
