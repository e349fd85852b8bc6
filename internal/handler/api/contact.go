package api

import (
	"log/slog"
	"net/http"

	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	contact service.ContactService
	logger  *slog.Logger
}

func NewContactHandler(contact service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contact: contact,
		logger:  logger.With("component", "contact_handler"),
	}
}

// Submit accepts a contact-form submission. The admin notification email is
// staged asynchronously; its fate never changes the response.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub service.ContactSubmission
	if err := handler.DecodeJSON(r, &sub); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	msg, err := h.contact.Submit(r.Context(), sub)
	if err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, msg)
}
