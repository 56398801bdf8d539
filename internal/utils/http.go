package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it to w with the given status code and
// an "application/json" Content-Type.
//
// Marshaling failures respond with 500 Internal Server Error and return a
// wrapped error; the status code passed by the caller is not written in that
// case.
//
// Parameters:
//
//	w          - the HTTP response writer
//	data       - any JSON-serializable value (struct, map, slice, nil, ...)
//	statusCode - HTTP status code for the response (e.g. http.StatusOK)
//
// Returns:
//
//	int   - number of body bytes written
//	error - non-nil if JSON marshaling fails
//
// Example usage:
//
//	WriteJSON(w, models.TokenPair{...}, http.StatusOK)
//	WriteJSON(w, models.ErrorResponse{Message: "not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
