package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"devcloud/internal/domain"
	"devcloud/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// ConflictError also matches ErrValidation, so it is checked first.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError
	var collabErr *domain.CollaboratorError

	switch {
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &collabErr):
		logger.Warn("assistant call failed",
			"operation", collabErr.Operation,
			"error", collabErr.Err,
		)
		httputil.RespondError(w, http.StatusBadGateway, collabErr.Error())
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseBody decodes a JSON body, answering 400 itself on failure
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathIndex reads a non-negative integer path value
func pathIndex(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
