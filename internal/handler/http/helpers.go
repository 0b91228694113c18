package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/socialjobs/workmatch/internal/handler/http/dto"
	"github.com/socialjobs/workmatch/internal/handler/http/middleware"
	"github.com/socialjobs/workmatch/internal/usecase"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// StatusFor maps a use case error onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrAuthRequired), errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrBackendUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// HandleError writes err with the status StatusFor picks. Backend failures
// are not echoed to the client.
func HandleError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = "service temporarily unavailable"
	case http.StatusInternalServerError:
		msg = "internal server error"
	}
	_ = c.Error(err)
	ErrorHandler(c, status, msg)
}

// currentUserID returns the id set by the auth middleware, or "".
func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}
