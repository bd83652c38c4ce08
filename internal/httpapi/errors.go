package httpapi

import (
	"encoding/json"
	"net/http"

	"modelexport/internal/exporter"
	"modelexport/internal/taxonomy"
	"modelexport/pkg/types"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	if taxonomy.IsUnknownCategory(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// statusForResult maps an export outcome to an HTTP status code.
func statusForResult(res exporter.Result) int {
	switch res.Reason {
	case exporter.ReasonNone:
		return http.StatusOK
	case exporter.ReasonMissingParameters:
		return http.StatusBadRequest
	case exporter.ReasonSourceNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
