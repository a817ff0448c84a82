package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"

	"folio/internal/config"
)

// ParseJSON decodes JSON from the request body into the given destination.
// The body is size-limited; section payloads can legitimately be large
// (whole entity lists with inline blog blocks), so the cap is generous.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// DisallowUnknownFields is intentionally not used: section payloads are
	// validated downstream by their typed decoders.

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
