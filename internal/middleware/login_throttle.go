package middleware

import (
	"context"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/lift-project-api/internal/errors"
	"github.com/yukikurage/lift-project-api/internal/ratelimit"
	"go.uber.org/zap"
)

// Throttler records attempts per key.
type Throttler interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
	Reset(ctx context.Context, key string) error
}

// LoginThrottle limits failed login attempts per client IP. A successful login
// clears the count. When the limiter's store is unreachable requests are let
// through and a warning is logged.
func LoginThrottle(limiter Throttler) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			Logger(c).Warn("login throttle unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			apierrors.TooManyRequests(c, "")
			return
		}
		c.Next()

		if status := c.Writer.Status(); status >= 200 && status < 300 {
			if err := limiter.Reset(c.Request.Context(), c.ClientIP()); err != nil {
				Logger(c).Warn("failed to reset login throttle", zap.Error(err))
			}
		}
	}
}
