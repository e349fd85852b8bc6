package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/domain"
)

// UUIDParam parses a uuid path segment registered as {name} in the route
// pattern.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.EINVALID, "", "Invalid %s", name)
	}
	return id, nil
}
