package response

import (
	"net/http"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes a 200 envelope around data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 envelope around data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 envelope with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta":    gin.H{"total": total, "page": page, "limit": limit},
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   errorBody{Code: string(domain.KindInvalidInput), Message: message},
	})
}

// Error maps a typed application error onto its HTTP status. Untyped errors
// become opaque 500s so internals never leak.
func Error(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	message := err.Error()

	var status int
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindInvalidInput, domain.KindInvalidDateRange, domain.KindInvalidState:
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody{Code: string(kind), Message: message},
	})
}
