package handler

import (
	"errors"
	"net/http"

	"copydesk/internal/domain"
	"copydesk/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	var structuralErr *domain.StructuralError
	var quotaErr *domain.QuotaError

	switch {
	case errors.As(err, &structuralErr):
		httputil.RespondErrorWithExtras(w, structuralErr.StatusCode(), structuralErr.Message, map[string]interface{}{
			"reason": structuralErr.Reason.Error(),
		})
	case errors.As(err, &quotaErr):
		extras := map[string]interface{}{}
		if quotaErr.Guidance != "" {
			extras["guidance"] = quotaErr.Guidance
		}
		httputil.RespondErrorWithExtras(w, quotaErr.StatusCode(), quotaErr.Message, extras)
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// HandleCreateConflict handles conflicts during creation by returning the
// existing resource with 409. If the error is a ConflictError, fetchFn
// retrieves the existing resource for the response body.
func HandleCreateConflict[T any](w http.ResponseWriter, err error, fetchFn func() (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		existing, fetchErr := fetchFn()
		if fetchErr != nil {
			handleError(w, fetchErr)
			return
		}

		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}

	handleError(w, err)
}
