package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into a JSON response.
//
// Behavior:
//   - Runs the rest of the chain first.
//   - If any handler attached an error and nothing was written yet, responds
//     500 with a dto.ErrorResponse built from the last error.
//   - Every attached error is logged with the request id.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	rid, _ := c.Get(RequestIDKey)
	for _, e := range c.Errors {
		logger.Component("http").Error().
			Err(e.Err).
			Str("request_id", toString(rid)).
			Str("path", c.Request.URL.Path).
			Msg("request error")
	}
	if c.Writer.Written() {
		return
	}
	last := c.Errors.Last()
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last.Err))
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with the
// given status.
//
// Parameters:
//   - c: current request context.
//   - status: HTTP status code to send.
//   - message: user-facing message.
//   - err: underlying cause; may be nil.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
