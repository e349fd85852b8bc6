package domain

import (
	"testing"
	"time"
)

func validDraft() DraftOrder {
	return DraftOrder{
		Customer: CustomerInfo{
			FirstName: "Jane",
			LastName:  "Miller",
			Email:     "jane@example.com",
			Phone:     "801-555-0100",
		},
		Delivery: DeliveryInfo{
			RequestedDate: time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			Address:       "455 N University Ave, Provo, UT",
		},
		Cart: CartInfo{Quantity: 1, PriceCents: 30000, Name: "15 Yard"},
	}
}

func TestValidateStage(t *testing.T) {
	tests := []struct {
		name       string
		stage      Stage
		mutate     func(*DraftOrder)
		wantFields []string
	}{
		{
			name:   "complete customer stage",
			stage:  StageCustomer,
			mutate: func(d *DraftOrder) {},
		},
		{
			name:       "missing phone blocks customer stage",
			stage:      StageCustomer,
			mutate:     func(d *DraftOrder) { d.Customer.Phone = "" },
			wantFields: []string{"phone"},
		},
		{
			name:       "missing last name blocks individuals",
			stage:      StageCustomer,
			mutate:     func(d *DraftOrder) { d.Customer.LastName = "" },
			wantFields: []string{"last_name"},
		},
		{
			name:  "business checkout does not need a last name",
			stage: StageCustomer,
			mutate: func(d *DraftOrder) {
				d.SetBusiness(true)
			},
		},
		{
			name:       "malformed email",
			stage:      StageCustomer,
			mutate:     func(d *DraftOrder) { d.Customer.Email = "jane.example.com" },
			wantFields: []string{"email"},
		},
		{
			name:       "delivery stage needs date and address",
			stage:      StageDelivery,
			mutate:     func(d *DraftOrder) { d.Delivery = DeliveryInfo{} },
			wantFields: []string{"requested_date", "address"},
		},
		{
			name:   "insurance stage is always complete",
			stage:  StageInsurance,
			mutate: func(d *DraftOrder) {},
		},
		{
			name:       "contract stage requires acceptance",
			stage:      StageContract,
			mutate:     func(d *DraftOrder) { d.ContractAccepted = false },
			wantFields: []string{"contract_accepted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			errs := ValidateStage(tt.stage, d)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d field errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for _, f := range tt.wantFields {
				if _, ok := errs[f]; !ok {
					t.Errorf("missing field error for %q in %v", f, errs)
				}
			}
		})
	}
}

func TestAdvance(t *testing.T) {
	d := validDraft()
	d.ContractAccepted = true

	stage := StageCustomer
	seq := []Stage{StageDelivery, StageInsurance, StageContract, StagePayment}
	for _, want := range seq {
		next, errs := Advance(stage, d)
		if len(errs) > 0 {
			t.Fatalf("Advance(%s) errors: %v", stage, errs)
		}
		if next != want {
			t.Fatalf("Advance(%s) = %s, want %s", stage, next, want)
		}
		stage = next
	}

	// Terminal stage does not advance.
	next, errs := Advance(StagePayment, d)
	if next != StagePayment || len(errs) != 0 {
		t.Errorf("Advance(payment) = %s, %v; want payment, no errors", next, errs)
	}
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	d := validDraft()
	d.Customer.Phone = ""

	next, errs := Advance(StageCustomer, d)
	if next != StageCustomer {
		t.Errorf("Advance with empty phone moved to %s, want to stay on customer", next)
	}
	if _, ok := errs["phone"]; !ok {
		t.Errorf("expected phone field error, got %v", errs)
	}
}

func TestBackNavigation(t *testing.T) {
	if got := Back(StageInsurance); got != StageDelivery {
		t.Errorf("Back(insurance) = %s, want delivery", got)
	}
	if got := Back(StageCustomer); got != StageCustomer {
		t.Errorf("Back(customer) = %s, want customer", got)
	}
}

func TestBackDoesNotClearLaterStageData(t *testing.T) {
	d := validDraft()
	d.Insurance.Driveway = true

	// Navigation is pure over stages; the draft is untouched.
	_ = Back(StageInsurance)
	if !d.Insurance.Driveway {
		t.Error("insurance selection lost on back navigation")
	}
}

func TestSetBusinessClearsLastName(t *testing.T) {
	d := validDraft()
	d.SetBusiness(true)
	if d.Customer.LastName != "" {
		t.Errorf("LastName = %q after switching to business, want empty", d.Customer.LastName)
	}

	// Switching back does not restore the cleared value.
	d.SetBusiness(false)
	if d.Customer.LastName != "" {
		t.Errorf("LastName = %q after switching back, want empty", d.Customer.LastName)
	}
}

func TestInsuranceTotalCents(t *testing.T) {
	prices := InsurancePrices{DrivewayCents: 4000, CancellationCents: 2500, RushCents: 7500}

	tests := []struct {
		name string
		sel  InsuranceSelection
		want int64
	}{
		{"none", InsuranceSelection{}, 0},
		{"driveway only", InsuranceSelection{Driveway: true}, 4000},
		{"all three", InsuranceSelection{Driveway: true, Cancellation: true, Rush: true}, 14000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.TotalCents(prices); got != tt.want {
				t.Errorf("TotalCents() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCartSubtotalCents(t *testing.T) {
	c := CartInfo{PriceCents: 30000, Quantity: 2}
	if got := c.SubtotalCents(); got != 60000 {
		t.Errorf("SubtotalCents() = %d, want 60000", got)
	}

	// Zero quantity is treated as one.
	c.Quantity = 0
	if got := c.SubtotalCents(); got != 30000 {
		t.Errorf("SubtotalCents() with zero quantity = %d, want 30000", got)
	}
}
