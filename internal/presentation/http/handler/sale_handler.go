package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/domain/enum"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
	"github.com/sangkips/posledger/pkg/apperror"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	orderService    *service.OrderService
	documentService *service.DocumentService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(orderService *service.OrderService, documentService *service.DocumentService) *SaleHandler {
	return &SaleHandler{orderService: orderService, documentService: documentService}
}

// Create handles committing a sale or sale return
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		PartyID:      req.PartyID,
		Items:        lineItems(req.Items),
		Discount:     req.Discount,
		PaymentMode:  req.PaymentMode,
		CashReceived: req.CashReceived,
		IsReturn:     req.IsReturn,
		AccountCode:  req.AccountCode,
		Date:         req.Date,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Sale created successfully"
	if req.IsReturn {
		message = "Sale return created successfully"
	}
	response.Created(c, message, result)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.documentService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	params, err := documentFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.documentService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

func lineItems(items []request.LineItemRequest) []service.LineItemInput {
	out := make([]service.LineItemInput, len(items))
	for i, item := range items {
		out[i] = service.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}
	return out
}

func documentFilter(c *gin.Context) (*repository.DocumentFilterParams, error) {
	var filter request.DocumentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		return nil, apperror.NewBadRequestError("Invalid query parameters")
	}

	params := &repository.DocumentFilterParams{
		Pagination: page(filter.Page, filter.PerPage),
		IsReturn:   filter.IsReturn,
		SortOrder:  filter.SortOrder,
	}

	var err error
	if params.PartyID, err = queryUUID(filter.PartyID, "party_id"); err != nil {
		return nil, err
	}
	if params.StartDate, err = queryTime(filter.StartDate, "start_date", false); err != nil {
		return nil, err
	}
	if params.EndDate, err = queryTime(filter.EndDate, "end_date", true); err != nil {
		return nil, err
	}

	switch filter.Status {
	case "":
	case "completed":
		status := enum.DocumentStatusCompleted
		params.Status = &status
	case "cancelled":
		status := enum.DocumentStatusCancelled
		params.Status = &status
	default:
		return nil, apperror.NewFieldError("status", "must be completed or cancelled")
	}
	return params, nil
}
