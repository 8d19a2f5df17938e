package middleware

import (
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors that handlers attached with c.Error. The response
// has already been written by the handler; internal detail stays in the log.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || l == nil {
			return
		}

		for _, ginErr := range c.Errors {
			l.WithContext(c.Request.Context()).Error("request error",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Error(ginErr.Err),
			)
		}
	}
}
