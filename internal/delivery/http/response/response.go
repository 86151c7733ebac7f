package response

import (
	"net/http"

	"recroot-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// PageRef points at an adjacent page using the same limit.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds the next/prev descriptors; either may be absent.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// NewPagination builds the window descriptors: next is present iff
// page*limit < total, prev iff page > 1. Total always counts the full
// matching set, not the returned window.
func NewPagination(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page)*int64(limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// Response standardizes the API JSON envelope. Message is a string for
// fixed errors or a []string of field messages for validation failures.
type Response struct {
	Success    bool        `json:"success"`
	Message    any         `json:"message,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Total      *int64      `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       any         `json:"data,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, data any) {
	c.JSON(code, Response{
		Success:   true,
		Data:      data,
		RequestID: requestID(c),
	})
}

// List sends a paginated collection response
func List(c *gin.Context, data any, count int, pagination Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &count,
		Pagination: &pagination,
		Data:       data,
		RequestID:  requestID(c),
	})
}

// SearchResults is List plus the window-independent total
func SearchResults(c *gin.Context, data any, count int, total int64, pagination Pagination) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Count:      &count,
		Total:      &total,
		Pagination: &pagination,
		Data:       data,
		RequestID:  requestID(c),
	})
}

// Fail sends an error-status response that still carries a data payload,
// such as a degraded health report
func Fail(c *gin.Context, code int, data any) {
	c.JSON(code, Response{
		Success:   false,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message any) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
