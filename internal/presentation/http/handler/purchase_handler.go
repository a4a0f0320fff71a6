package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	orderService    *service.OrderService
	documentService *service.DocumentService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(orderService *service.OrderService, documentService *service.DocumentService) *PurchaseHandler {
	return &PurchaseHandler{orderService: orderService, documentService: documentService}
}

// Create handles committing a purchase or purchase return
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		PartyID:     req.PartyID,
		Items:       lineItems(req.Items),
		Discount:    req.Discount,
		PaymentMode: req.PaymentMode,
		CashPaid:    req.CashPaid,
		IsReturn:    req.IsReturn,
		AccountCode: req.AccountCode,
		Date:        req.Date,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Purchase created successfully"
	if req.IsReturn {
		message = "Purchase return created successfully"
	}
	response.Created(c, message, result)
}

// Get handles getting a single purchase with its items
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	purchase, err := h.documentService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	params, err := documentFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.documentService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}
