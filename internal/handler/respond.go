package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rolloffco/rolloff/internal/domain"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into v. A malformed body comes back
// as an EINVALID error suitable for ErrorResponse.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.Errorf(domain.EINVALID, "", "Invalid request body")
	}
	return nil
}
