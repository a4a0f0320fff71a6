package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/posledger/pkg/apperror"
	"github.com/sangkips/posledger/pkg/pagination"
)

// GetSubject extracts the authenticated token subject from the Gin context
func GetSubject(c *gin.Context) string {
	subject, exists := c.Get("subject")
	if !exists {
		return ""
	}
	s, _ := subject.(string)
	return s
}

// pathID parses a UUID path parameter
func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// queryUUID parses an optional UUID query value
func queryUUID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a valid UUID")
	}
	return &id, nil
}

// queryTime accepts a date (YYYY-MM-DD) or an RFC3339 timestamp. A bare date
// used as an upper bound covers the whole day.
func queryTime(raw, field string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func page(p, perPage int) *pagination.PaginationParams {
	return pagination.New(p, perPage)
}
