package admin

import (
	"log/slog"
	"net/http"

	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// ServiceAreaHandler manages the named regions that drive tax matching and
// delivery serviceability.
type ServiceAreaHandler struct {
	admin  service.AdminService
	logger *slog.Logger
}

func NewServiceAreaHandler(admin service.AdminService, logger *slog.Logger) *ServiceAreaHandler {
	return &ServiceAreaHandler{
		admin:  admin,
		logger: logger.With("component", "service_area_handler"),
	}
}

func (h *ServiceAreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.admin.ListServiceAreas(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, areas)
}

func (h *ServiceAreaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	area, err := h.admin.GetServiceArea(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, area)
}

// Create accepts the tax rate as a percentage (2.0 for 2%) and stores it as
// a fraction. A null rate keeps the area out of tax matching entirely.
func (h *ServiceAreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.ServiceAreaInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	area, err := h.admin.CreateServiceArea(r.Context(), input)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, area)
}

func (h *ServiceAreaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var input service.ServiceAreaInput
	if err := handler.DecodeJSON(r, &input); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	area, err := h.admin.UpdateServiceArea(r.Context(), id, input)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, area)
}

func (h *ServiceAreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.admin.DeleteServiceArea(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
