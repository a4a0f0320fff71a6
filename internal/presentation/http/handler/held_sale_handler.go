package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// HeldSaleHandler handles parked carts
type HeldSaleHandler struct {
	heldService  *service.HeldSaleService
	orderService *service.OrderService
}

// NewHeldSaleHandler creates a new held sale handler
func NewHeldSaleHandler(heldService *service.HeldSaleService, orderService *service.OrderService) *HeldSaleHandler {
	return &HeldSaleHandler{heldService: heldService, orderService: orderService}
}

// Hold handles parking a cart
func (h *HeldSaleHandler) Hold(c *gin.Context) {
	var req request.HoldSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	held, err := h.heldService.Hold(c.Request.Context(), &service.HoldSaleInput{
		PartyID:      req.PartyID,
		Items:        req.Items,
		Discount:     req.Discount,
		PaymentMode:  req.PaymentMode,
		CashReceived: req.CashReceived,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale held successfully", held)
}

// List handles listing held carts
func (h *HeldSaleHandler) List(c *gin.Context) {
	held, err := h.heldService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held sales retrieved successfully", held)
}

// Resume removes the cart and returns it. With commit=true the cart is
// committed as a sale straight away and parked again if the sale fails.
func (h *HeldSaleHandler) Resume(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	held, err := h.heldService.Resume(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("commit") != "true" {
		response.OK(c, "Held sale resumed successfully", held)
		return
	}

	result, err := h.orderService.CreateSale(ctx, service.SaleInputFromHeld(held))
	if err != nil {
		_, holdErr := h.heldService.Hold(ctx, &service.HoldSaleInput{
			PartyID:      held.PartyID,
			Items:        held.Items,
			Discount:     held.Discount,
			PaymentMode:  held.PaymentMode,
			CashReceived: held.CashReceived,
			Note:         held.Note,
		})
		if holdErr != nil {
			logger.FromContext(ctx, nil).Error("failed to park cart again", zap.Error(holdErr))
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", result)
}

// Delete handles discarding a held cart
func (h *HeldSaleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.heldService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
