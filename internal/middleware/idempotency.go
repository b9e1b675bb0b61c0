package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyWindow = 24 * time.Hour

// IdempotencyGuard rejects replays of a decision POST carrying the same
// Idempotency-Key from the same caller. Decisions are the one place a
// duplicate submit can do damage, so the guard sits only on those routes.
// Requests without the header pass through untouched.
func IdempotencyGuard(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		employeeID := c.GetString("employee_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)

		isNew, err := rdb.SetNX(c.Request.Context(), cacheKey, "seen", idempotencyWindow).Result()
		if err != nil {
			// Redis being down must not block decisions; the status CAS in
			// the service still makes replays harmless.
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"this request was already processed", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
