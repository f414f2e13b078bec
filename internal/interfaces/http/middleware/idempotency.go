package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response of a create request sent
// again with the same Idempotency-Key. Requests pass straight through when
// Redis is not configured or unreachable.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Request.Method, c.Request.URL.Path, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request already in progress",
				"code":  "ERR_IDEMPOTENCY_CONFLICT",
			})
			return
		case err == nil:
			status, body := decodeStored(val)
			c.Header("X-Idempotency-Hit", "true")
			c.Data(status, "application/json; charset=utf-8", []byte(body))
			c.Abort()
			return
		case !errors.Is(err, redisv9.Nil):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": "Request in progress",
				"code":  "ERR_IDEMPOTENCY_CONFLICT",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			_ = redisSet(ctx, storageKey, encodeStored(status, w.body.String()), RetentionDuration)
			return
		}
		// failed attempts may be retried with the same key
		_ = redisDel(ctx, storageKey)
	}
}

// stored responses are "<status>\n<body>"
func encodeStored(status int, body string) string {
	return strconv.Itoa(status) + "\n" + body
}

func decodeStored(val string) (int, string) {
	head, body, ok := strings.Cut(val, "\n")
	if !ok {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(head)
	if err != nil {
		return http.StatusOK, val
	}
	return status, body
}
