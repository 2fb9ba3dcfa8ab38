package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"veeloway/internal/auth"
	"veeloway/internal/repository"
	"veeloway/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Referential miss
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidContractID),
		errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidScooterID),
		errors.Is(err, service.ErrCustomerInactive),
		errors.Is(err, service.ErrScooterNotBound),
		errors.Is(err, service.ErrScooterNotAssignable),
		errors.Is(err, service.ErrInvalidMinutes),
		errors.Is(err, service.ErrPaymentMethodRequired),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidCustomerStatus),
		errors.Is(err, service.ErrInvalidScooterStatus),
		errors.Is(err, service.ErrInvalidBattery),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidEntryType),
		errors.Is(err, service.ErrInvalidEntryAmount),
		errors.Is(err, service.ErrInvalidEntryDate):
		return http.StatusBadRequest

	// Invalid-transition and contention errors - Conflict
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrScooterInUse):
		return http.StatusConflict

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrProviderUnavailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
