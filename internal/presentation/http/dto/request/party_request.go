package request

import "github.com/sangkips/posledger/internal/domain/enum"

// CreatePartyRequest represents a customer or supplier creation request
type CreatePartyRequest struct {
	Kind           enum.PartyKind `json:"kind" binding:"required"`
	Name           string         `json:"name" binding:"required"`
	Email          *string        `json:"email"`
	Phone          *string        `json:"phone"`
	Address        *string        `json:"address"`
	IsWalkIn       bool           `json:"is_walk_in"`
	OpeningBalance int64          `json:"opening_balance"`
}

// PartyFilterRequest represents party filter parameters
type PartyFilterRequest struct {
	Kind    string `form:"kind"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// StatementRequest bounds a ledger statement; dates are YYYY-MM-DD or RFC3339
type StatementRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}
