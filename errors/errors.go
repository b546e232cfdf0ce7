package errors

import (
	"fmt"
	"net/http"

	"github.com/TripCast/tripcast-backend/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	NotFoundError         ErrorType = "NOT_FOUND"
	LocationNotFoundError ErrorType = "LOCATION_NOT_FOUND"
	ClimateFetchError     ErrorType = "CLIMATE_FETCH_ERROR"
	AlreadySavedError     ErrorType = "ALREADY_SAVED"
	OwnTripError          ErrorType = "OWN_TRIP"
	AuthError             ErrorType = "AUTHENTICATION_ERROR"
	DatabaseError         ErrorType = "DATABASE_ERROR"
	ServerError           ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// LocationNotFound is returned when geocoding yields no result for the given text.
func LocationNotFound(query string) *AppError {
	return &AppError{
		Type:       LocationNotFoundError,
		Message:    "Location not found",
		Detail:     fmt.Sprintf("Query: %s", query),
		HTTPStatus: http.StatusNotFound,
	}
}

// ClimateFetch wraps a climate-provider failure. It covers transport errors,
// non-2xx provider responses, and degenerate empty daily series.
func ClimateFetch(detail string, raw error) *AppError {
	return &AppError{
		Type:       ClimateFetchError,
		Message:    "Failed to fetch climate data",
		Detail:     detail,
		HTTPStatus: http.StatusBadGateway,
		Raw:        raw,
	}
}

func AlreadySaved(userID, tripID string) *AppError {
	return &AppError{
		Type:       AlreadySavedError,
		Message:    "Trip already saved",
		Detail:     fmt.Sprintf("User %s already saved trip %s", userID, tripID),
		HTTPStatus: http.StatusConflict,
	}
}

func OwnTrip(userID, tripID string) *AppError {
	return &AppError{
		Type:       OwnTripError,
		Message:    "Cannot save own trip",
		Detail:     fmt.Sprintf("User %s owns trip %s", userID, tripID),
		HTTPStatus: http.StatusConflict,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError, LocationNotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case AlreadySavedError, OwnTripError:
		return http.StatusConflict
	case ClimateFetchError:
		return http.StatusBadGateway
	case DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
