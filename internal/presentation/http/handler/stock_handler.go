package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
)

// StockHandler exposes the movement store
type StockHandler struct {
	orderService *service.OrderService
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(orderService *service.OrderService, stockService *service.StockService) *StockHandler {
	return &StockHandler{orderService: orderService, stockService: stockService}
}

// Adjust handles a manual stock correction
func (h *StockHandler) Adjust(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Note:      req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjusted successfully", result)
}

// Current handles reading a product's derived stock
func (h *StockHandler) Current(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	level, err := h.stockService.CurrentStock(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock retrieved successfully", level)
}

// History handles listing a product's movements
func (h *StockHandler) History(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.stockService.History(c.Request.Context(), id, page(req.Page, req.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Movements retrieved successfully", result)
}

// LowStock handles listing products at or below their alert level
func (h *StockHandler) LowStock(c *gin.Context) {
	levels, err := h.stockService.LowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", levels)
}
