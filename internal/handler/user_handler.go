package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"account-service/internal/domain/user"
	"account-service/internal/middleware"
	"account-service/internal/services"
	"account-service/internal/transport/httpdto"
	account_errors "account-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const ProfileImageField = "profileImage"

const (
	msgUserNotFound     = "User not found"
	msgInternalError    = "Internal server error"
	msgProfileUpdated   = "Profile updated successfully"
	msgUserDeleted      = "User deleted successfully"
	msgInvalidRequest   = "Invalid request body"
	msgLoginErrorPrefix = "An error occurred while logging in"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Login handles POST /login. It runs behind middleware.EmailValidator.
func (h *UserHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msgInvalidRequest))
		return
	}

	id, err := h.service.Login(c.Request.Context(), middleware.EmailFromContext(c), req.ID)
	if err != nil {
		if errors.Is(err, account_errors.ErrConflict) {
			c.AbortWithStatus(http.StatusConflict)
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, httpdto.NewMessageResponse(fmt.Sprintf("%s: %v", msgLoginErrorPrefix, err)))
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{ID: id})
}

// GetProfile handles GET /profile/:email.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.service.GetProfile(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles POST /profile, either multipart with an optional
// profileImage file or a plain JSON body.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	req, img, err := bindProfileUpdate(c)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(msgInvalidRequest))
		return
	}

	_, err = h.service.UpdateProfile(c.Request.Context(), middleware.EmailFromContext(c), req.ToProfileUpdate(img))
	if err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse(msgProfileUpdated))
}

// DeleteUser handles DELETE /deleteUser.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.EmailFromContext(c)); err != nil {
		h.writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewMessageResponse(msgUserDeleted))
}

// writeStoreError maps a service error to 404 or a generic 500. The error
// detail is attached to the context for logging only.
func (h *UserHandler) writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, account_errors.ErrNotFound) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(msgUserNotFound))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(msgInternalError))
}

func bindProfileUpdate(c *gin.Context) (httpdto.UpdateProfileRequest, *user.Image, error) {
	var req httpdto.UpdateProfileRequest

	contentType := c.ContentType()
	if contentType != binding.MIMEMultipartPOSTForm && contentType != binding.MIMEPOSTForm {
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			return req, nil, err
		}
		return req, nil, nil
	}

	req.Email = c.PostForm("email")
	req.Username = c.PostForm("username")
	req.AboutMe = c.PostForm("aboutMe")
	req.Gender = c.PostForm("gender")
	req.Age = parseAge(c.PostForm("age"))
	if raw := c.PostForm("settings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Settings); err != nil {
			return req, nil, fmt.Errorf("decode settings: %w", err)
		}
	}

	if contentType != binding.MIMEMultipartPOSTForm {
		return req, nil, nil
	}
	img, err := formImage(c)
	if err != nil {
		return req, nil, err
	}
	return req, img, nil
}

// parseAge returns 0 ("not provided") for anything that is not a finite number.
func parseAge(raw string) float64 {
	age, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(age) || math.IsInf(age, 0) {
		return 0
	}
	return age
}

func formImage(c *gin.Context) (*user.Image, error) {
	header, err := c.FormFile(ProfileImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ProfileImageField, err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ProfileImageField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ProfileImageField, err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &user.Image{ContentType: contentType, Data: data}, nil
}
