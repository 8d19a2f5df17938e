package handler

import (
	"context"
	"net/http"
	"time"

	"account-service/internal/services"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *services.UserService
}

func NewHealthHandler(service *services.UserService) *HealthHandler {
	return &HealthHandler{service: service}
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
