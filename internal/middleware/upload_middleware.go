package middleware

import (
	"errors"
	"net/http"
	"strings"

	"account-service/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// MultipartForm buffers a multipart body of at most maxBytes in memory before
// the rest of the chain runs. Other content types pass through untouched.
func MultipartForm(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != binding.MIMEMultipartPOSTForm {
			c.Next()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
			if isBodyTooLarge(err) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httpdto.NewErrorResponse("File too large"))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid multipart form"))
			return
		}
		c.Next()
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
