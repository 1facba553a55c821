package handler

import (
	"net/http"
	"strconv"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/middleware"
	"github.com/gearshare/service-rental/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.RequireUserID())
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForBooker)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.DecideBooking)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// DecideBooking handles PATCH /api/v1/bookings/:id?approved=true|false.
func (h *BookingHandler) DecideBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.DecideBooking(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForBooker handles GET /api/v1/bookings?state=... The state param
// defaults to ALL at this layer only; the service rejects blank input.
func (h *BookingHandler) ListForBooker(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListBookingsForBooker(c.Request.Context(), userID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForOwner handles GET /api/v1/bookings/owner?state=...
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListBookingsForOwner(c.Request.Context(), userID, c.DefaultQuery("state", "ALL"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
