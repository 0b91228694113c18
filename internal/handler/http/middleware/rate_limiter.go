package middleware

import (
	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
)

// RateLimiter applies a tollbooth limiter to every request.
func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if httpErr := tollbooth.LimitByRequest(lmt, c.Writer, c.Request); httpErr != nil {
			c.Header("Content-Type", "application/json")
			c.AbortWithStatusJSON(httpErr.StatusCode, dto.ErrorResponse{Error: httpErr.Message})
			return
		}
		c.Next()
	}
}
