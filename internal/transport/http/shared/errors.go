package shared

import (
	"errors"
	"net/http"

	"storeops/internal/domain/validation"
	"storeops/internal/transport/http/api"
)

// WriteDomainError maps a service error onto the response envelope:
// validation errors become 400 with the field attached, known not-found
// sentinels become 404, anything else is a generic 500.
func WriteDomainError(w http.ResponseWriter, requestID string, err error, notFoundSentinels ...error) {
	if verr, ok := validation.AsError(err); ok {
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", verr.Message,
			map[string]any{"field": verr.Field}, requestID)
		return
	}
	for _, sentinel := range notFoundSentinels {
		if errors.Is(err, sentinel) {
			api.Fail(w, http.StatusNotFound, "not_found", sentinel.Error(), requestID)
			return
		}
	}
	api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
}
