package common

import (
	"encoding/json"
	"net/http"
)

// The catalog API returns bare JSON payloads (arrays for collections, objects
// for confirmations). Error responses are shaped by pkg/errors.ErrorHandler.

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}
