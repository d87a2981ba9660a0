package v1

import (
	"gateway/internal/domain"
	"gateway/internal/infra/cache"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const DEFAULT_LIMIT = 150
const EXPIRATION_SECONDS = 30

// returns true if rate limit is exceeded
func depositRateLimit(clientIP string, limit int) bool {
	var expiration = time.Second * time.Duration(EXPIRATION_SECONDS)

	count := cache.RateLimitsCache.LoadOrSet(clientIP, 1, expiration)
	if count == nil {
		return true
	}

	countInt, ok := count.(int)
	if !ok {
		return true
	}

	if countInt > limit {
		return true
	}

	cache.RateLimitsCache.Set(clientIP, countInt+1, expiration)
	return false
}

func (h *Handler) rateLimitMiddleware(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if depositRateLimit(c.ClientIP(), limit) {
			responseErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
