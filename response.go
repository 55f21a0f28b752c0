package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every /api/v1 reply.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Response codes. Zero means success; errors use the HTTP status times 100.
const (
	CodeOK            = 0
	CodeBadRequest    = 40000
	CodeNotFound      = 40400
	CodeInternalError = 50000
)

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// ErrorWithDetails writes an error envelope carrying details.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message, details string) {
	ErrorWithDetails(c, http.StatusBadRequest, CodeBadRequest, message, details)
}

// NotFound 404
func NotFound(c *gin.Context, message, details string) {
	ErrorWithDetails(c, http.StatusNotFound, CodeNotFound, message, details)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	ErrorWithDetails(c, http.StatusInternalServerError, CodeInternalError, message, "")
}
