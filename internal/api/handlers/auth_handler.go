// internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type AuthService interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
}

type AuthHandler struct {
	Auth AuthService
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", res)
}

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var _ Pinger = (*mongo.Client)(nil)

type HealthHandler struct {
	DB Pinger
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeUnavailable, "Database unreachable")
		return
	}
	response.Success(c, http.StatusOK, "OK", gin.H{"database": "up"})
}
