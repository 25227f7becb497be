package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxBodyBytes bounds request bodies. It leaves headroom above the 10MB
// content limit for JSON escaping of data-URI payloads.
const MaxBodyBytes = 16 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// Unknown fields are rejected so a misspelled key fails loudly.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
