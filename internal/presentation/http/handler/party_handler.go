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

// PartyHandler handles customers, suppliers and their ledgers
type PartyHandler struct {
	partyService  *service.PartyService
	ledgerService *service.LedgerService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService, ledgerService *service.LedgerService) *PartyHandler {
	return &PartyHandler{partyService: partyService, ledgerService: ledgerService}
}

// List handles listing parties
func (h *PartyHandler) List(c *gin.Context) {
	var filter request.PartyFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.PartyFilterParams{
		Pagination: page(filter.Page, filter.PerPage),
		Search:     filter.Search,
	}
	if filter.Kind != "" {
		kind := enum.PartyKind(filter.Kind)
		if !kind.IsValid() {
			response.Error(c, apperror.NewFieldError("kind", "must be customer or supplier"))
			return
		}
		params.Kind = &kind
	}

	result, err := h.partyService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Parties retrieved successfully", result)
}

// Create handles creating a customer or supplier
func (h *PartyHandler) Create(c *gin.Context) {
	var req request.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	party, err := h.partyService.Create(c.Request.Context(), &service.CreatePartyInput{
		Kind:           req.Kind,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		IsWalkIn:       req.IsWalkIn,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Party created successfully", party)
}

// Get handles getting a single party
func (h *PartyHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	party, err := h.partyService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Party retrieved successfully", party)
}

// Balance handles reading a party's running balance
func (h *PartyHandler) Balance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	balance, err := h.partyService.Balance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved successfully", balance)
}

// Statement handles listing a party's ledger between two dates
func (h *PartyHandler) Statement(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	from, err := queryTime(req.From, "from", false)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := queryTime(req.To, "to", true)
	if err != nil {
		response.Error(c, err)
		return
	}

	statement, err := h.ledgerService.EntriesInRange(c.Request.Context(), id, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}
