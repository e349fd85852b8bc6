package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
)

const testWebhookSecret = "whsec_test_secret"

type mockConfirmService struct {
	ConfirmFunc func(ctx context.Context, pendingOrderID uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error)

	calls []uuid.UUID
}

func (m *mockConfirmService) Confirm(ctx context.Context, pendingOrderID uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
	m.calls = append(m.calls, pendingOrderID)
	return m.ConfirmFunc(ctx, pendingOrderID, sessionID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sessionCompletedEvent builds a signed checkout.session.completed payload.
func sessionCompletedEvent(t *testing.T, sessionID string, metadata map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	session := map[string]interface{}{
		"id":       sessionID,
		"object":   "checkout.session",
		"status":   "complete",
		"metadata": metadata,
	}
	raw, err := json.Marshal(session)
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"id":"evt_test_1","object":"event","api_version":%q,"type":"checkout.session.completed","data":{"object":%s}}`, stripe.APIVersion, raw)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testWebhookSecret,
	})

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	return req, httptest.NewRecorder()
}

func TestHandleWebhook_SessionCompletedConfirmsOrder(t *testing.T) {
	pendingOrderID := uuid.New()
	confirm := &mockConfirmService{
		ConfirmFunc: func(ctx context.Context, id uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
			assert.Equal(t, pendingOrderID, id)
			assert.Equal(t, "cs_test_123", sessionID)
			return &domain.ConfirmedOrder{RentalID: uuid.New(), TotalCents: 40603}, nil
		},
	}
	h := NewStripeHandler(confirm, testWebhookSecret, testLogger())

	req, rec := sessionCompletedEvent(t, "cs_test_123", map[string]string{
		"pending_order_id": pendingOrderID.String(),
	})
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, confirm.calls, 1)
}

func TestHandleWebhook_AlreadyConfirmedStillAcknowledged(t *testing.T) {
	confirm := &mockConfirmService{
		ConfirmFunc: func(ctx context.Context, id uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
			return nil, domain.ErrPendingOrderNotFound
		},
	}
	h := NewStripeHandler(confirm, testWebhookSecret, testLogger())

	req, rec := sessionCompletedEvent(t, "cs_test_123", map[string]string{
		"pending_order_id": uuid.New().String(),
	})
	h.HandleWebhook(rec, req)

	// The redirect beat us to it. Stripe must not retry.
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleWebhook_MissingMetadataAcknowledged(t *testing.T) {
	confirm := &mockConfirmService{
		ConfirmFunc: func(ctx context.Context, id uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
			t.Fatal("confirm should not be called")
			return nil, nil
		},
	}
	h := NewStripeHandler(confirm, testWebhookSecret, testLogger())

	req, rec := sessionCompletedEvent(t, "cs_test_123", nil)
	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, confirm.calls)
}

func TestHandleWebhook_InvalidSignatureRejected(t *testing.T) {
	confirm := &mockConfirmService{
		ConfirmFunc: func(ctx context.Context, id uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
			t.Fatal("confirm should not be called")
			return nil, nil
		},
	}
	h := NewStripeHandler(confirm, testWebhookSecret, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "t=1,v1=bogus")
	rec := httptest.NewRecorder()

	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, confirm.calls)
}

func TestHandleWebhook_UnhandledEventAcknowledged(t *testing.T) {
	confirm := &mockConfirmService{
		ConfirmFunc: func(ctx context.Context, id uuid.UUID, sessionID string) (*domain.ConfirmedOrder, error) {
			t.Fatal("confirm should not be called")
			return nil, nil
		},
	}
	h := NewStripeHandler(confirm, testWebhookSecret, testLogger())

	payload := fmt.Sprintf(`{"id":"evt_test_2","object":"event","api_version":%q,"type":"payment_intent.created","data":{"object":{}}}`, stripe.APIVersion)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  testWebhookSecret,
	})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	rec := httptest.NewRecorder()

	h.HandleWebhook(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
