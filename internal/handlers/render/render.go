package render

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/osokin/authgate/internal/apperrors"
)

// apiError is the error half of the envelope, mirroring the classified
// kind's fixed status+message pair.
type apiError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// envelope is the single response shape of the whole API:
// {"data": ..., "success": true, "error": null} on success,
// {"data": null, "success": false, "error": {...}} on failure.
type envelope struct {
	Data    any       `json:"data"`
	Success bool      `json:"success"`
	Error   *apiError `json:"error"`
}

// JSON renders a success envelope with status 200
func JSON(w http.ResponseWriter, data any) {
	JSONStatus(w, data, http.StatusOK)
}

// JSONStatus renders a success envelope and enforces the status code
func JSONStatus(w http.ResponseWriter, data any, code int) {
	writeJSON(w, envelope{Data: data, Success: true}, code)
}

// Error renders the error envelope of a classified failure. The status
// comes from the error kind itself, never from the call site.
func Error(w http.ResponseWriter, appErr *apperrors.Error) {
	writeJSON(w, envelope{
		Error: &apiError{Message: appErr.Message, Status: appErr.Status},
	}, appErr.Status)
}

// writeJSON encodes into a buffer first so a marshalling failure can't
// leave a half-written body behind
func writeJSON(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		http.Error(w, apperrors.ErrInternal.Message, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
