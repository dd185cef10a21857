package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/borrowhub/service-rental/internal/apperr"
)

// Success writes a 200 response with the payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response with the payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Error maps an application error to its HTTP status and writes it. Unknown
// errors become an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnavailable, apperr.KindIncorrect, apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAccessDenied:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": appErr.Message})
}
