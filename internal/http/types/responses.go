// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/tenant-directory/internal/logging"
	"github.com/canonical/tenant-directory/internal/storage"
	"github.com/canonical/tenant-directory/internal/types"
)

// Response is the envelope of every successful reply.
type Response struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ErrorResponse follows the {status, message} shape expected by the UI.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteResponse(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Response{Data: data, Message: message, Status: status})
}

// StatusFromError maps domain and storage errors onto HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, types.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicateIdentifier), errors.Is(err, types.ErrRepairRequired):
		return http.StatusConflict
	case errors.Is(err, types.ErrAlreadyProcessed):
		return http.StatusOK
	case errors.Is(err, types.ErrUnknownTenant), errors.Is(err, types.ErrUnknownTenantMember):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// WriteError renders err, hiding the details of unexpected failures.
func WriteError(w http.ResponseWriter, err error, logger logging.LoggerInterface) {
	status := StatusFromError(err)

	if errors.Is(err, types.ErrAlreadyProcessed) {
		WriteResponse(w, status, nil, types.ErrAlreadyProcessed.Error())
		return
	}

	resp := ErrorResponse{Status: status, Message: err.Error()}

	var verr *types.ValidationError
	var perr *types.FailedPartialError

	switch {
	case errors.As(err, &verr):
		resp.Message = types.ErrValidation.Error()
		resp.Fields = verr.Fields
	case errors.As(err, &perr):
		logger.Errorf("provisioning left request %s partial: %v", perr.RequestID, perr.Cause)
		resp.Message = types.ErrFailedPartial.Error()
		resp.RequestID = perr.RequestID
	case errors.Is(err, types.ErrAuthFailure):
		resp.Message = types.ErrAuthFailure.Error()
	case status == http.StatusServiceUnavailable:
		logger.Errorf("storage unavailable: %v", err)
		resp.Message = storage.ErrUnavailable.Error()
	case status == http.StatusInternalServerError:
		logger.Errorf("unexpected error: %v", err)
		resp.Message = "internal server error"
	}

	WriteJSON(w, status, resp)
}

// Decode reads a JSON body into v, reporting malformed input as a validation error.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return types.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}
