package repository

import (
	"strings"

	"github.com/sangkips/posledger/internal/domain/enum"
	domainRepo "github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate returns a GORM scope that row-locks the selected rows until the
// surrounding transaction ends. SQLite ignores the clause and serialises
// writers on its own.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Paginate applies offset/limit from the pagination params
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = pagination.DefaultPagination()
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// Search filters on a case-insensitive substring match over the given columns
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = like
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// DocumentFilters applies the shared sale/purchase filters
func DocumentFilters(params *domainRepo.DocumentFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		if params.PartyID != nil {
			db = db.Where("party_id = ?", *params.PartyID)
		}
		if params.Status != nil {
			db = db.Where("status = ?", *params.Status)
		}
		if params.IsReturn != nil {
			db = db.Where("is_return = ?", *params.IsReturn)
		}
		if params.StartDate != nil {
			db = db.Where("date >= ?", *params.StartDate)
		}
		if params.EndDate != nil {
			db = db.Where("date <= ?", *params.EndDate)
		}
		return db
	}
}

// ByDocument selects effect rows tagged with one document
func ByDocument(docType enum.DocumentType, ref interface{}) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("document_type = ? AND document_ref = ?", docType, ref)
	}
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
