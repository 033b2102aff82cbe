package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/mauv0809/courtside/internal/apperr"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
// All failures match apperr.ErrValidation.
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", apperr.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
		}
		fields := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			fields = append(fields, fieldError.Field()+" "+validationErrorMessage(fieldError))
		}
		return fmt.Errorf("%w: %s", apperr.ErrValidation, strings.Join(fields, ", "))
	}
	return nil
}

func validationErrorMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "max":
		return "is too long"
	case "oneof":
		return "must be one of: " + fieldError.Param()
	default:
		return "is invalid"
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrNoAvailability),
		errors.Is(err, apperr.ErrSlotUnavailable),
		errors.Is(err, apperr.ErrMatchFull):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the text shown to clients. Internal failures are not
// described beyond their kind.
func publicMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError renders err as {"error": ..., "code": ...} and logs it once.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logError(r, status, err)
	writeJSON(w, status, map[string]string{
		"error": publicMessage(err, status),
		"code":  apperr.Code(err),
	})
}

func logError(r *http.Request, status int, err error) {
	logger := log.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "status", status, "code", apperr.Code(err), "error", err)
		return
	}
	logger.Warn("Request rejected", "status", status, "code", apperr.Code(err), "error", err)
}
