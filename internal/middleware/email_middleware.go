package middleware

import (
	"net/http"

	"account-service/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const emailContextKey = "email"

// EmailValidator rejects requests whose email field is missing or malformed
// before any handler runs. The email is read from form values for form and
// multipart bodies and from the JSON body otherwise; a JSON body stays
// available to the handler through ShouldBindBodyWith.
func EmailValidator() gin.HandlerFunc {
	validate := validator.New()
	return func(c *gin.Context) {
		email, err := requestEmail(c)
		if err != nil || validate.Var(email, "required,email") != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid email"))
			return
		}
		c.Set(emailContextKey, email)
		c.Next()
	}
}

// EmailFromContext returns the email accepted by EmailValidator.
func EmailFromContext(c *gin.Context) string {
	return c.GetString(emailContextKey)
}

func requestEmail(c *gin.Context) (string, error) {
	switch c.ContentType() {
	case binding.MIMEMultipartPOSTForm, binding.MIMEPOSTForm:
		return c.PostForm("email"), nil
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
		return "", err
	}
	return body.Email, nil
}
