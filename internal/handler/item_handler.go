package handler

import (
	"net/http"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/middleware"
	"github.com/gearshare/service-rental/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/api/v1/items")
	items.Use(middleware.RequireUserID())
	{
		items.POST("", h.CreateItem)
		items.GET("", h.GetOwnerItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.POST("/:id/comment", h.AddComment)
	}
}

// CreateItem handles POST /api/v1/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateItem handles PATCH /api/v1/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem handles GET /api/v1/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.service.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOwnerItems handles GET /api/v1/items.
func (h *ItemHandler) GetOwnerItems(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetOwnerItems(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchItems handles GET /api/v1/items/search?text=...
func (h *ItemHandler) SearchItems(c *gin.Context) {
	result, err := h.service.SearchItems(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteItem handles DELETE /api/v1/items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddComment handles POST /api/v1/items/:id/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
