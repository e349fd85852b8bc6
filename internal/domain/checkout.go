package domain

import (
	"strings"
	"time"
)

// Stage identifies one step of the booking wizard. Stage order is fixed;
// back-navigation is always allowed and never clears later-stage data.
type Stage string

const (
	StageCustomer  Stage = "customer"
	StageDelivery  Stage = "delivery"
	StageInsurance Stage = "insurance"
	StageContract  Stage = "contract"
	StagePayment   Stage = "payment"
)

// StageOrder is the fixed wizard sequence.
var StageOrder = []Stage{StageCustomer, StageDelivery, StageInsurance, StageContract, StagePayment}

// CustomerInfo is the customer slice of a draft order. When Business is set,
// FirstName holds the company name and LastName is unused.
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Business  bool   `json:"business"`
}

// DisplayName returns the name as shown on rentals and emails.
func (c CustomerInfo) DisplayName() string {
	if c.Business || c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// DeliveryInfo is the delivery slice of a draft order. Address is free text;
// it is matched against service areas, never geocoded, in the tax path.
type DeliveryInfo struct {
	RequestedDate time.Time `json:"requested_date"`
	Address       string    `json:"address"`
}

// InsuranceSelection holds the optional add-ons.
type InsuranceSelection struct {
	Driveway     bool `json:"driveway"`
	Cancellation bool `json:"cancellation"`
	Rush         bool `json:"rush"`
}

// InsurancePrices holds per-add-on prices in cents.
type InsurancePrices struct {
	DrivewayCents     int64
	CancellationCents int64
	RushCents         int64
}

// TotalCents prices the current selection.
func (s InsuranceSelection) TotalCents(p InsurancePrices) int64 {
	var total int64
	if s.Driveway {
		total += p.DrivewayCents
	}
	if s.Cancellation {
		total += p.CancellationCents
	}
	if s.Rush {
		total += p.RushCents
	}
	return total
}

// CartInfo is the product snapshot carried through checkout. DumpsterTypeID
// may be empty when the booking UI preselects nothing; confirmation falls
// back to a configured default type.
type CartInfo struct {
	DumpsterTypeID string `json:"dumpster_type_id"`
	Quantity       int32  `json:"quantity"`
	PriceCents     int64  `json:"price_cents"`
	Name           string `json:"name"`
}

// SubtotalCents returns the cart line total.
func (c CartInfo) SubtotalCents() int64 {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	return c.PriceCents * int64(qty)
}

// DraftOrder is the in-memory state of an in-progress booking. It is owned
// by a single wizard session and never persisted before staging.
type DraftOrder struct {
	Customer         CustomerInfo       `json:"customer"`
	Delivery         DeliveryInfo       `json:"delivery"`
	Insurance        InsuranceSelection `json:"insurance"`
	Cart             CartInfo           `json:"cart"`
	ContractAccepted bool               `json:"contract_accepted"`
}

// SetBusiness toggles between business and individual checkout. Switching to
// business clears the last-name field; switching back does not restore it.
func (d *DraftOrder) SetBusiness(business bool) {
	if business && !d.Customer.Business {
		d.Customer.LastName = ""
	}
	d.Customer.Business = business
}

// ValidateStage checks the required fields of one stage against the draft.
// Returns a field-name to message map, empty when the stage is complete.
// Stages only validate their own slice of the draft.
func ValidateStage(stage Stage, d DraftOrder) map[string]string {
	errs := map[string]string{}

	switch stage {
	case StageCustomer:
		if strings.TrimSpace(d.Customer.FirstName) == "" {
			if d.Customer.Business {
				errs["first_name"] = "Company name is required"
			} else {
				errs["first_name"] = "First name is required"
			}
		}
		if !d.Customer.Business && strings.TrimSpace(d.Customer.LastName) == "" {
			errs["last_name"] = "Last name is required"
		}
		if strings.TrimSpace(d.Customer.Phone) == "" {
			errs["phone"] = "Phone number is required"
		}
		email := strings.TrimSpace(d.Customer.Email)
		if email == "" {
			errs["email"] = "Email is required"
		} else if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
			errs["email"] = "Email address is invalid"
		}
	case StageDelivery:
		if d.Delivery.RequestedDate.IsZero() {
			errs["requested_date"] = "Delivery date is required"
		}
		if strings.TrimSpace(d.Delivery.Address) == "" {
			errs["address"] = "Delivery address is required"
		}
	case StageInsurance:
		// Add-ons are optional; the stage is always complete.
	case StageContract:
		if !d.ContractAccepted {
			errs["contract_accepted"] = "You must accept the rental agreement"
		}
	case StagePayment:
		// Terminal stage; staging performs its own checks.
	}

	return errs
}

// Advance returns the next stage when the current stage validates, otherwise
// the same stage plus the field errors. Advancing from the payment stage is
// not possible.
func Advance(stage Stage, d DraftOrder) (Stage, map[string]string) {
	if errs := ValidateStage(stage, d); len(errs) > 0 {
		return stage, errs
	}
	for i, s := range StageOrder {
		if s == stage {
			if i == len(StageOrder)-1 {
				return stage, nil
			}
			return StageOrder[i+1], nil
		}
	}
	return stage, map[string]string{"stage": "unknown stage"}
}

// Back returns the previous stage. Backing out of the first stage stays on
// the first stage. Draft data is never cleared by navigation.
func Back(stage Stage) Stage {
	for i, s := range StageOrder {
		if s == stage {
			if i == 0 {
				return stage
			}
			return StageOrder[i-1]
		}
	}
	return stage
}
