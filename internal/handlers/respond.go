// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"inventory-service/internal/common/auth"
	apperrors "inventory-service/internal/common/errors"
	"inventory-service/internal/common/metrics"
	"inventory-service/internal/schemas"
	"inventory-service/internal/store"
	"inventory-service/internal/validation"
)

// readBody returns the request body, bounded by the configured limit.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewRequestTooLargeError(tooLarge.Limit)
		}
		return nil, apperrors.NewMalformedPayloadError(err.Error())
	}
	return raw, nil
}

// pathID reads a positive integer path parameter.
func (h *handler) pathID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidPathIDError(param, fmt.Sprintf("%q is not an integer", raw))
	}
	if _, err := h.validators.ID.Validate(id); err != nil {
		return 0, apperrors.NewInvalidPathIDError(param, err.Error())
	}
	return id, nil
}

func userID(r *http.Request) int64 {
	user, _ := auth.UserFromContext(r.Context())
	return user.ID
}

// respond checks the envelope against its response schema before writing it.
func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, schema schemas.Name, key string, value interface{}) {
	envelope := map[string]interface{}{key: value}

	body, err := json.Marshal(envelope)
	if err != nil {
		h.fail(w, r, apperrors.NewInternalError(err))
		return
	}

	if err := h.registry.Validate(schema, json.RawMessage(body)); err != nil {
		h.log.Error("response does not match its schema", map[string]interface{}{
			"requestId": requestIDFrom(r.Context()),
			"schema":    string(schema),
			"error":     err,
		})
		h.fail(w, r, apperrors.NewResponseValidationFailedError(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *handler) noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// fail answers the request with the error body matching err.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.HandleHTTPError(w, r, h.classify(r, err))
}

func (h *handler) classify(r *http.Request, err error) error {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	var ve *validation.Error
	if errors.As(err, &ve) {
		metrics.ValidationFailures.WithLabelValues(ve.Subject, ve.Kind.String()).Inc()
		switch ve.Kind {
		case validation.MalformedPayload:
			return apperrors.NewMalformedPayloadError(ve.Error())
		case validation.StructuralMismatch:
			return apperrors.NewStructuralMismatchError(ve.Error(), ve.Path)
		default:
			return apperrors.NewSemanticInvalidError(ve.Error(), ve.Field)
		}
	}

	switch {
	case errors.Is(err, store.ErrOrgNotFound):
		return apperrors.NewOrgNotFoundError(err.Error())
	case errors.Is(err, store.ErrOrgAlreadyExists):
		return apperrors.NewOrgAlreadyExistsError(err.Error())
	case errors.Is(err, store.ErrSectionNotFound):
		return apperrors.NewMenuSectionNotFoundError(err.Error())
	case errors.Is(err, store.ErrItemNotFound):
		return apperrors.NewMenuItemNotFoundError(err.Error())
	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.NewAuthenticationError(err.Error())
	case errors.Is(err, auth.ErrIdentityUnavailable):
		return apperrors.NewIdentityUnavailableError(err)
	}

	h.obs.RecordStoreError(r.Context(), routePattern(r))
	return apperrors.NewInternalError(err)
}
