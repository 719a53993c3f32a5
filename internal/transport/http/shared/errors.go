package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"staffhub/internal/domain/record"
	"staffhub/internal/transport/http/api"
)

// FailDomain translates a domain error into the matching HTTP status
// and envelope. Unknown errors become a 500 without leaking details.
func FailDomain(w http.ResponseWriter, err error, requestID string) {
	switch {
	case record.IsValidation(err):
		api.FailWithDetails(
			w,
			http.StatusBadRequest,
			"validation_error",
			err.Error(),
			map[string]any{"fields": validationFields(err)},
			requestID,
		)
	case record.IsNotFound(err):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), requestID)
	case record.IsIntegrity(err):
		api.Fail(w, http.StatusConflict, "integrity_violation", err.Error(), requestID)
	case record.IsInvalidTransition(err):
		api.Fail(w, http.StatusConflict, "invalid_transition", err.Error(), requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func validationFields(err error) []ValidationIssue {
	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	return []ValidationIssue{{Field: verr.Field, Reason: verr.Reason}}
}
