// internal/api/handlers/booking_handler.go
package handlers

import (
	"context"
	"net/http"

	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/models"
	"contingent-booking-api-server/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingService interface {
	Create(ctx context.Context, in service.BookingInput) (*models.Booking, error)
	Update(ctx context.Context, id string, in service.BookingInput) (*models.Booking, error)
	Delete(ctx context.Context, id string) (*models.Booking, error)
	SetStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error)
	GetAll(ctx context.Context, limit, skip int64) (*models.BookingPage, error)
	ByID(ctx context.Context, id string) (*models.Booking, error)
	FilterContingentName(ctx context.Context, name string) ([]models.ContingentNameOption, error)
}

type Exporter interface {
	Export(ctx context.Context) (string, error)
}

type BookingHandler struct {
	Bookings BookingService
	Exporter Exporter
}

type listQuery struct {
	Limit int64 `form:"limit"`
	Skip  int64 `form:"skip"`
}

type statusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// CreateBooking handles POST /booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Booking created", booking)
}

// UpdateBooking handles PUT /booking/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req service.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := h.Bookings.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking updated", booking)
}

// DeleteBooking handles DELETE /booking/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	booking, err := h.Bookings.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking deleted", booking)
}

// SetStatus handles PATCH /booking/:id/status.
func (h *BookingHandler) SetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	booking, err := h.Bookings.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking status updated", booking)
}

// GetAll handles GET /booking?limit=&skip=.
func (h *BookingHandler) GetAll(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.Bookings.GetAll(c.Request.Context(), q.Limit, q.Skip)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved", page)
}

// GetByID handles GET /booking/:id.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.Bookings.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking retrieved", booking)
}

// FilterContingentName handles GET /booking/contingent-names?name=.
func (h *BookingHandler) FilterContingentName(c *gin.Context) {
	names, err := h.Bookings.FilterContingentName(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Contingent names retrieved", names)
}

// Export handles POST /booking/export.
func (h *BookingHandler) Export(c *gin.Context) {
	url, err := h.Exporter.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings exported", gin.H{"url": url})
}
