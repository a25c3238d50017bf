package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// Page is an offset-paginated result set.
type Page struct {
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	LastPage    int         `json:"last_page"`
	From        *int        `json:"from"`
	To          *int        `json:"to"`
}

// NewPage computes the page metadata for a slice of n items.
func NewPage(list interface{}, n int, total int64, page, perPage int) Page {
	lastPage := int(total) / perPage
	if int(total)%perPage > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	p := Page{
		CurrentPage: page,
		Data:        list,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
	if n > 0 {
		from := (page-1)*perPage + 1
		to := from + n - 1
		p.From, p.To = &from, &to
	}
	return p
}

// ── success ──

// OK 200
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// OKWithMeta 200 with extra top-level fields next to data (count, total, search_params).
func OKWithMeta(c *gin.Context, message string, data interface{}, meta gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
		"data":    data,
	}
	for k, v := range meta {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Created 201
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ── errors ──

// Error writes a failure envelope with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{
		Success: false,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// ValidationFailed 422 with field level messages.
func ValidationFailed(c *gin.Context, fields map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// InternalError 500. detail is only sent to the caller when expose is true.
func InternalError(c *gin.Context, message, detail string, expose bool) {
	body := Response{
		Success: false,
		Message: message,
		Error:   "An unexpected error occurred",
	}
	if expose && detail != "" {
		body.Error = detail
	}
	c.JSON(http.StatusInternalServerError, body)
}
