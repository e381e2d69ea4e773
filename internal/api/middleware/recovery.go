package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"s2x/internal/api/errors"
)

// Recovery turns panics into an internal APIError response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)

		logger.Error("Recovered from panic",
			zap.Any("recovered", recovered),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)

		apiErr := errors.NewInternalError("Internal server error")
		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as an APIError and aborts the chain. Internal
// errors are logged with the request id since their message is not returned.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := errors.FromError(err)
	resp := *apiErr
	resp.RequestID = c.GetString(RequestIDKey)

	if resp.Kind == errors.KindInternal || resp.Kind == errors.KindBadGateway {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(resp.HTTPStatus(), &resp)
}
