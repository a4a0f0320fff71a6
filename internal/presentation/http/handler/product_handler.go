package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with their stock
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.productService.List(c.Request.Context(), &repository.ProductFilterParams{
		Pagination: page(filter.Page, filter.PerPage),
		Search:     filter.Search,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &service.CreateProductInput{
		Name:         req.Name,
		SKU:          req.SKU,
		UnitCost:     req.UnitCost,
		SalePrice:    req.SalePrice,
		MinStock:     req.MinStock,
		TaxRate:      req.TaxRate,
		OpeningStock: req.OpeningStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}
