package handler

import (
	"strconv"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/response"
	"github.com/gin-gonic/gin"
)

// AdminHandler exposes operational read views over all bookings.
type AdminHandler struct {
	bookings *application.BookingService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bookings *application.BookingService) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.GetStats)
	}
}

// ListBookings handles GET /api/v1/admin/bookings?page=&limit=.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	result, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	result, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
