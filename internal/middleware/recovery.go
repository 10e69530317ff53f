package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics
// raised while handling a request (a renderer bug, for instance), logs the
// stack trace and returns a standardized JSON error response.
//
// Behavior:
//   - Uses defer to catch any panic that occurs during request handling.
//   - Logs the recovered value, request id and stack trace.
//   - Returns a 500 Internal Server Error response using dto.NewErrorResponse.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(RequestIDKey)
				logger.Component("http").Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("request_id", toString(rid)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
			}
		}()

		c.Next()
	}
}
