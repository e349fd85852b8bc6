package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/address"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/handler"
	"github.com/rolloffco/rolloff/internal/service"
)

// CheckoutHandler serves the booking wizard: stage navigation, pricing,
// serviceability, the payment handoff, and the post-payment confirmation.
type CheckoutHandler struct {
	checkout service.CheckoutService
	staging  service.StagingService
	confirm  service.ConfirmService
	logger   *slog.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, staging service.StagingService, confirm service.ConfirmService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		staging:  staging,
		confirm:  confirm,
		logger:   logger.With("component", "checkout_handler"),
	}
}

// advanceRequest is the wizard navigation payload. The full draft rides
// along so the server can validate the current stage.
type advanceRequest struct {
	Stage domain.Stage      `json:"stage"`
	Draft domain.DraftOrder `json:"draft"`
}

type stageResponse struct {
	Stage  domain.Stage      `json:"stage"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Advance validates the current stage and moves the wizard forward.
// Validation failures return 200 with the same stage and field errors;
// the wizard is a conversation, not an error condition.
func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	next, fields := h.checkout.Advance(r.Context(), req.Stage, req.Draft)
	handler.JSON(w, http.StatusOK, stageResponse{Stage: next, Fields: fields})
}

// Back moves the wizard to the previous stage without validating.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stage domain.Stage `json:"stage"`
	}
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, stageResponse{Stage: h.checkout.Back(r.Context(), req.Stage)})
}

// Quote prices the draft as it stands: cart, insurance add-ons, and tax
// against the delivery address.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var draft domain.DraftOrder
	if err := handler.DecodeJSON(r, &draft); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	quote, err := h.checkout.Quote(r.Context(), draft)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, quote)
}

type serviceabilityRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

type serviceabilityResponse struct {
	Classification address.Classification `json:"classification"`
	NearestArea    string                 `json:"nearest_area,omitempty"`
	DistanceMiles  float64                `json:"distance_miles"`
	Serviceable    bool                   `json:"serviceable"`
}

// Serviceability classifies a delivery point against the configured
// service areas.
func (h *CheckoutHandler) Serviceability(w http.ResponseWriter, r *http.Request) {
	var req serviceabilityRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	result, err := h.checkout.CheckServiceability(r.Context(), address.Query{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	})
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, serviceabilityResponse{
		Classification: result.Classification,
		NearestArea:    result.NearestArea,
		DistanceMiles:  result.DistanceMiles,
		Serviceable:    result.Serviceable(),
	})
}

// DumpsterTypes lists the active rentable catalog for the cart stage.
func (h *CheckoutHandler) DumpsterTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.checkout.ListDumpsterTypes(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, types)
}

// Stage snapshots the completed draft and hands the browser off to the
// hosted payment page.
func (h *CheckoutHandler) Stage(w http.ResponseWriter, r *http.Request) {
	var draft domain.DraftOrder
	if err := handler.DecodeJSON(r, &draft); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	staged, err := h.staging.Stage(r.Context(), draft)
	if err != nil {
		handler.ValidationErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, staged)
}

// Confirm finalizes a paid pending order from the success redirect. A 404
// means the order was already confirmed, typically by the webhook racing
// the redirect.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	pendingOrderID, err := uuid.Parse(r.URL.Query().Get("pending_order_id"))
	if err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("checkout.confirm", "Invalid pending order id"))
		return
	}
	sessionID := r.URL.Query().Get("session_id")

	order, err := h.confirm.Confirm(r.Context(), pendingOrderID, sessionID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, order)
}
