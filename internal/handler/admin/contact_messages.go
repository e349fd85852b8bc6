package admin

import (
	"log/slog"
	"net/http"

	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// ContactMessageHandler serves the inbox side of the contact form.
type ContactMessageHandler struct {
	contact service.ContactService
	logger  *slog.Logger
}

func NewContactMessageHandler(contact service.ContactService, logger *slog.Logger) *ContactMessageHandler {
	return &ContactMessageHandler{
		contact: contact,
		logger:  logger.With("component", "contact_message_handler"),
	}
}

// List returns submissions newest first, optionally filtered by
// ?status=new|read|archived.
func (h *ContactMessageHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.ContactStatus
	if s := r.URL.Query().Get("status"); s != "" {
		cs := domain.ContactStatus(s)
		if !domain.ValidContactStatus(cs) {
			handler.ErrorResponse(w, r, domain.Invalid("contact.list", "Invalid status filter"))
			return
		}
		status = &cs
	}

	msgs, err := h.contact.ListMessages(r.Context(), status)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, msgs)
}

func (h *ContactMessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	msg, err := h.contact.GetMessage(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, msg)
}

// SetStatus moves a message through the triage states.
func (h *ContactMessageHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req struct {
		Status domain.ContactStatus `json:"status"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.contact.SetMessageStatus(r.Context(), id, req.Status); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
