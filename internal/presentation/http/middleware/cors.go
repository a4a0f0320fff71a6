package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/config"
)

// Headers a till client always needs to send
var requiredRequestHeaders = []string{"Authorization", "Content-Type", IdempotencyKeyHeader}

// Headers the browser may read back from ledger responses
var exposedResponseHeaders = []string{
	"Content-Length",
	"X-Request-ID",
	ReplayedHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
}

// CORSMiddleware builds the CORS handler from config, filling in the methods
// and headers the ledger API relies on when they are not configured.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	}

	headers := append([]string{"Accept", "Origin", "X-Request-ID"}, cfg.AllowedHeaders...)
	for _, h := range requiredRequestHeaders {
		if !containsHeader(headers, h) {
			headers = append(headers, h)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    exposedResponseHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}
