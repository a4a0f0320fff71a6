package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/application/service"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/presentation/http/dto/request"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
)

// CashHandler handles cash accounts and their postings
type CashHandler struct {
	cashService *service.CashService
}

// NewCashHandler creates a new cash handler
func NewCashHandler(cashService *service.CashService) *CashHandler {
	return &CashHandler{cashService: cashService}
}

// List handles listing accounts with their balances
func (h *CashHandler) List(c *gin.Context) {
	accounts, err := h.cashService.ListAccounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash accounts retrieved successfully", accounts)
}

// Create handles creating a cash account
func (h *CashHandler) Create(c *gin.Context) {
	var req request.CreateCashAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	account, err := h.cashService.CreateAccount(c.Request.Context(), &service.CreateAccountInput{
		Code:           req.Code,
		Name:           req.Name,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash account created successfully", account)
}

// Postings handles listing an account's postings
func (h *CashHandler) Postings(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.PostingFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PostingFilterParams{Pagination: page(req.Page, req.PerPage)}
	if params.From, err = queryTime(req.From, "from", false); err != nil {
		response.Error(c, err)
		return
	}
	if params.To, err = queryTime(req.To, "to", true); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.cashService.Postings(c.Request.Context(), id, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Postings retrieved successfully", result)
}
