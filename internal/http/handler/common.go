package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	fieldErrors := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldName := toJSONFieldName(fe.Field())
			fieldErrors[fieldName] = formatValidationError(fe)
		}
	}

	respondJSON(w, http.StatusBadRequest, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: fieldErrors,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (snake_case)
func toJSONFieldName(field string) string {
	var b strings.Builder
	b.Grow(len(field) + 4)
	for i, r := range field {
		if unicode.IsUpper(r) {
			// Underscore before each word boundary, keeping acronym
			// runs like "ACV" or "ID" together.
			if i > 0 {
				prevLower := unicode.IsLower(rune(field[i-1]))
				nextLower := i+1 < len(field) && unicode.IsLower(rune(field[i+1]))
				if prevLower || (unicode.IsUpper(rune(field[i-1])) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// respondProblem sends an APIError with an explicit problem type, for
// statuses whose default type is too generic
func respondProblem(w http.ResponseWriter, status int, errType, detail string) {
	respondJSON(w, status, domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}

// respondServiceError translates service sentinel errors into problem
// responses. Unknown errors become a 500 and are logged with the cause.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrPermissionDenied):
		respondWithError(w, http.StatusForbidden, "You do not have access to this resource")
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRepInactive):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRevisionConflict):
		respondProblem(w, http.StatusConflict, domain.ErrorTypeRevisionConflict, err.Error())
	case errors.Is(err, service.ErrFinancialsLocked):
		respondProblem(w, http.StatusUnprocessableEntity, domain.ErrorTypeFinancialsLocked, err.Error())
	default:
		logger.Error("unhandled service error", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "An internal error occurred")
	}
}

// workflowBlockedResponse is the 422 body for an admin transition refused
// by unmet step requirements. The embedded check lists the missing fields.
type workflowBlockedResponse struct {
	domain.APIError
	Check workflow.StepCheck `json:"check"`
}

func respondWorkflowBlocked(w http.ResponseWriter, check workflow.StepCheck, detail string) {
	respondJSON(w, http.StatusUnprocessableEntity, workflowBlockedResponse{
		APIError: domain.APIError{
			Type:   domain.ErrorTypeWorkflowBlocked,
			Title:  "Workflow Blocked",
			Status: http.StatusUnprocessableEntity,
			Detail: detail,
		},
		Check: check,
	})
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	default:
		return domain.ErrorTypeInternal
	}
}
