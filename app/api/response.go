package api

import (
	"encoding/json"
	"net/http"
)

// OKResponse writes data as JSON with a 200 status.
func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

// JSONResponse writes data as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, nothing useful can be done with the error.
	_ = json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{
		"error": message,
	})
}
