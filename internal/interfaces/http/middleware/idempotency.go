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
	goredis "github.com/redis/go-redis/v9"
	"fingerpay.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the key is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long the response replay is kept
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request carries an
// Idempotency-Key already seen for this account. A key still being processed
// yields 409.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		subjectID := ""
		if id, ok := GetSubjectID(c); ok {
			subjectID = id.String()
		}
		storageKey := fmt.Sprintf("idempotency:%s:%s", subjectID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"message": "Request already in progress",
				})
				return
			}

			status, body := splitStoredResponse(val)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(status, body)
			c.Abort()
			return
		} else if !errors.Is(err, goredis.Nil) {
			// redis unavailable: let the request through rather than block it
			c.Next()
			return
		}

		ok, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Request in progress",
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			stored := fmt.Sprintf("%d\n%s", c.Writer.Status(), w.body.String())
			_ = redisSet(ctx, storageKey, stored, RetentionDuration)
		} else {
			// failed requests may be retried with the same key
			_ = redisDel(ctx, storageKey)
		}
	}
}

// splitStoredResponse recovers the original status and body from a stored
// replay value. Entries written before status prefixing replay as 200.
func splitStoredResponse(val string) (int, string) {
	prefix, body, found := strings.Cut(val, "\n")
	if !found {
		return http.StatusOK, val
	}
	status, err := strconv.Atoi(prefix)
	if err != nil || status < 200 || status > 599 {
		return http.StatusOK, val
	}
	return status, body
}
