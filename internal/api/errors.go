// Package api provides error handling utilities for HTTP APIs
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/logger"
	catalogerrors "github.com/jermspeaks/watchlist/internal/modules/catalogmodule/errors"
	"github.com/jermspeaks/watchlist/internal/types"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error   ErrorDetails `json:"error"`
	Success bool         `json:"success"`
}

// ErrorDetails contains detailed error information
type ErrorDetails struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// RespondWithError sends a structured error response
func RespondWithError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}

	appErr := ToAppError(err).WithRequestID(requestID)
	logError(appErr)

	c.JSON(appErr.HTTPStatus, ErrorResponse{
		Success: false,
		Error: ErrorDetails{
			Code:      string(appErr.Code),
			Message:   appErr.Message,
			Details:   appErr.Details,
			Context:   appErr.Context,
			RequestID: appErr.RequestID,
		},
	})
}

// ToAppError converts any error into an AppError. Catalog validation errors
// become 400s, catalog database errors become 500s with DATABASE_ERROR, and
// context cancellation keeps its own codes.
func ToAppError(err error) *types.AppError {
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var catErr *catalogerrors.CatalogError
	if errors.As(err, &catErr) {
		switch catErr.Type {
		case catalogerrors.ErrorTypeValidation:
			converted := types.NewValidationError(catErr.Message())
			if catErr.Field != "" {
				converted.WithContext("field", catErr.Field)
			}
			if allowed, ok := catErr.Details["allowed"]; ok {
				converted.WithContext("allowed", allowed)
			}
			return converted
		case catalogerrors.ErrorTypeDatabase:
			return types.NewDatabaseError(catErr.Op, catErr.Err)
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.NewAppErrorWithCause(types.ErrorCodeTimeout, "Request timed out", http.StatusGatewayTimeout, err)
	case errors.Is(err, context.Canceled):
		return types.NewAppErrorWithCause(types.ErrorCodeCancelled, "Request cancelled", http.StatusRequestTimeout, err)
	}

	return types.NewInternalError("Internal server error", err)
}

// RespondWithNotFound sends a not found error response
func RespondWithNotFound(c *gin.Context, resource string, id string) {
	RespondWithError(c, types.NewNotFoundError(resource, id))
}

// RespondWithBindError reports a request body or query that could not be decoded
func RespondWithBindError(c *gin.Context, err error) {
	RespondWithError(c, types.NewValidationError("Invalid request", fmt.Sprint(err)))
}

// logError logs the error with appropriate severity
func logError(err *types.AppError) {
	fields := []interface{}{
		"error_code", err.Code,
		"error_message", err.Message,
		"request_id", err.RequestID,
	}

	if err.Details != "" {
		fields = append(fields, "details", err.Details)
	}

	for k, v := range err.Context {
		fields = append(fields, k, v)
	}

	if err.Cause != nil {
		fields = append(fields, "cause", err.Cause.Error())
	}

	switch err.Severity {
	case types.SeverityCritical:
		logger.Error("critical error", fields...)
	case types.SeverityWarning:
		logger.Warn("request rejected", fields...)
	case types.SeverityInfo:
		logger.Info("request failed", fields...)
	default:
		logger.Error("error occurred", fields...)
	}
}

// ErrorMiddleware is a middleware that recovers from panics and handles errors
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch v := r.(type) {
				case error:
					err = v
				case string:
					err = errors.New(v)
				default:
					err = fmt.Errorf("panic: %v", v)
				}

				appErr := types.NewInternalError("panic recovered", err)

				logger.Error("panic recovered",
					"error", err,
					"request_path", c.Request.URL.Path,
					"request_method", c.Request.Method,
				)

				RespondWithError(c, appErr)
				c.Abort()
			}
		}()

		c.Next()
	}
}
