package admin

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// DumpsterHandler serves catalog management: size classes and the physical
// units behind them.
type DumpsterHandler struct {
	admin  service.AdminService
	logger *slog.Logger
}

func NewDumpsterHandler(admin service.AdminService, logger *slog.Logger) *DumpsterHandler {
	return &DumpsterHandler{
		admin:  admin,
		logger: logger.With("component", "dumpster_handler"),
	}
}

type dumpsterTypeRequest struct {
	Name       string  `json:"name"`
	SizeYards  int32   `json:"size_yards"`
	PriceCents int64   `json:"price_cents"`
	LengthFeet float64 `json:"length_feet"`
	WidthFeet  float64 `json:"width_feet"`
	HeightFeet float64 `json:"height_feet"`
	Quantity   int32   `json:"quantity"`
	Active     bool    `json:"active"`
}

func (req dumpsterTypeRequest) toDomain(id uuid.UUID) domain.DumpsterType {
	return domain.DumpsterType{
		ID:         id,
		Name:       req.Name,
		SizeYards:  req.SizeYards,
		PriceCents: req.PriceCents,
		LengthFeet: req.LengthFeet,
		WidthFeet:  req.WidthFeet,
		HeightFeet: req.HeightFeet,
		Quantity:   req.Quantity,
		Active:     req.Active,
	}
}

// ListTypes returns all size classes, active or not, ordered by size.
func (h *DumpsterHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.admin.ListDumpsterTypes(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, types)
}

func (h *DumpsterHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req dumpsterTypeRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	created, err := h.admin.CreateDumpsterType(r.Context(), req.toDomain(uuid.Nil))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, created)
}

func (h *DumpsterHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req dumpsterTypeRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	updated, err := h.admin.UpdateDumpsterType(r.Context(), req.toDomain(id))
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, updated)
}

func (h *DumpsterHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.admin.DeleteDumpsterType(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dumpsterRequest struct {
	DumpsterTypeID uuid.UUID `json:"dumpster_type_id"`
	Identifier     string    `json:"identifier"`
	Notes          string    `json:"notes"`
}

// ListUnits returns physical units with their derived in-use flag. A unit
// is in use when its linked rental is delivered but not picked up.
func (h *DumpsterHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.admin.ListDumpsters(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, units)
}

func (h *DumpsterHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req dumpsterRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	created, err := h.admin.CreateDumpster(r.Context(), domain.Dumpster{
		DumpsterTypeID: req.DumpsterTypeID,
		Identifier:     req.Identifier,
		Notes:          req.Notes,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, created)
}

func (h *DumpsterHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req dumpsterRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	updated, err := h.admin.UpdateDumpster(r.Context(), domain.Dumpster{
		ID:             id,
		DumpsterTypeID: req.DumpsterTypeID,
		Identifier:     req.Identifier,
		Notes:          req.Notes,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, updated)
}

func (h *DumpsterHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, err := handler.UUIDParam(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.admin.DeleteDumpster(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
