package middleware

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/domain/entity"
	"github.com/sangkips/posledger/internal/domain/repository"
	"github.com/sangkips/posledger/internal/infrastructure/logger"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader marks a response served from a stored key
	ReplayedHeader = "X-Idempotency-Replayed"
	// DefaultIdempotencyTTL is how long keys are valid
	DefaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a POST is retried with the same
// Idempotency-Key. The key is claimed before the handler runs, so a second
// request arriving meanwhile gets 409 instead of committing again. Reusing a
// key with a different body is rejected. Only successful responses are kept;
// any other outcome releases the claim so the request can be retried.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > 255 {
			response.BadRequest(c, "Idempotency-Key is too long")
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		client := clientID(c)
		hash := requestHash(c.Request.Method, c.Request.URL.RequestURI(), body)

		claim := &entity.IdempotencyKey{
			Key:         key,
			ClientID:    client,
			Endpoint:    c.Request.Method + " " + c.FullPath(),
			RequestHash: hash,
			ExpiresAt:   time.Now().Add(ttl),
		}
		existing, err := config.Repo.Claim(ctx, claim)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if existing != nil {
			switch {
			case existing.RequestHash != hash:
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.APIResponse{
					Success: false,
					Message: "Idempotency-Key was already used with a different request",
				})
			case existing.IsPending():
				c.AbortWithStatusJSON(http.StatusConflict, response.APIResponse{
					Success: false,
					Message: "A request with this Idempotency-Key is still in progress",
				})
			default:
				c.Header(ReplayedHeader, "true")
				c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
				c.Abort()
			}
			return
		}

		// The claim must be settled even when the client has gone away
		settleCtx := context.WithoutCancel(ctx)
		stored := false
		defer func() {
			if stored {
				return
			}
			if err := config.Repo.Release(settleCtx, claim.ID); err != nil {
				logger.FromContext(ctx, nil).Warn("failed to release idempotency key",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}()

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		// A committed request keeps its claim even if the response cannot be saved
		stored = true
		if err := config.Repo.Complete(settleCtx, claim.ID, status, blw.body.String()); err != nil {
			logger.FromContext(ctx, nil).Warn("failed to store idempotency key",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

func requestHash(method, path string, body []byte) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
