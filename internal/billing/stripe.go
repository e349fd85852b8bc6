package billing

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
)

// StripeProvider implements Provider on the Stripe API.
type StripeProvider struct {
	client *stripe.Client
}

// NewStripeProvider creates a Stripe-backed provider.
func NewStripeProvider(secretKey string) (*StripeProvider, error) {
	if secretKey == "" {
		return nil, ErrInvalidAPIKey
	}
	return &StripeProvider{client: stripe.NewClient(secretKey)}, nil
}

// CreateCheckoutSession implements Provider.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	quantity := params.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	sessionParams := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(params.SuccessURL),
		CancelURL:          stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name:        stripe.String(params.ProductName),
						Description: stripe.String(fmt.Sprintf("Delivery to %s on %s", params.DeliveryAddress, params.DeliveryDate.Format("Jan 2, 2006"))),
					},
					UnitAmount: stripe.Int64(params.AmountCents),
				},
				Quantity: stripe.Int64(quantity),
			},
		},
		CustomerEmail: stripe.String(params.CustomerEmail),
		Metadata: map[string]string{
			MetadataPendingOrderID: params.PendingOrderID.String(),
			"customer_name":        params.CustomerName,
			"delivery_date":        params.DeliveryDate.Format("2006-01-02"),
		},
	}

	// Customer email is optional. Only send if present to avoid Stripe validation errors.
	if params.CustomerEmail == "" {
		sessionParams.CustomerEmail = nil
	}

	sess, err := p.client.V1CheckoutSessions.Create(ctx, sessionParams)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to create checkout session")
	}

	return sessionFromStripe(sess), nil
}

// GetCheckoutSession implements Provider.
func (p *StripeProvider) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	sess, err := p.client.V1CheckoutSessions.Retrieve(ctx, sessionID, nil)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to retrieve checkout session")
	}
	return sessionFromStripe(sess), nil
}

// CreateCustomer implements Provider.
func (p *StripeProvider) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*Customer, error) {
	customerParams := &stripe.CustomerCreateParams{
		Email:    stripe.String(params.Email),
		Name:     stripe.String(params.Name),
		Metadata: params.Metadata,
	}
	if params.Phone != "" {
		customerParams.Phone = stripe.String(params.Phone)
	}

	cust, err := p.client.V1Customers.Create(ctx, customerParams)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to create customer")
	}

	return &Customer{ID: cust.ID, Email: cust.Email, Name: cust.Name}, nil
}

// CreateFollowUpIntent implements Provider.
func (p *StripeProvider) CreateFollowUpIntent(ctx context.Context, params FollowUpIntentParams) (*PaymentIntent, error) {
	if params.StripeCustomerID == "" {
		return nil, ErrNoCustomer
	}
	if params.AmountCents < 50 {
		return nil, ErrAmountTooSmall
	}

	intentParams := &stripe.PaymentIntentCreateParams{
		Amount:      stripe.Int64(params.AmountCents),
		Currency:    stripe.String("usd"),
		Customer:    stripe.String(params.StripeCustomerID),
		Description: stripe.String(params.Description),
		Metadata:    params.Metadata,
	}

	intent, err := p.client.V1PaymentIntents.Create(ctx, intentParams)
	if err != nil {
		return nil, wrapStripeErr(err, "failed to create payment intent")
	}

	return &PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
	}, nil
}

// ReadWebhookEvent verifies the signature on an incoming webhook request and
// returns the parsed event.
func ReadWebhookEvent(r *http.Request, payload []byte, secret string) (*stripe.Event, error) {
	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		return nil, ErrInvalidWebhookSignature
	}

	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature validation failed: %w", err)
	}

	return &event, nil
}

func sessionFromStripe(sess *stripe.CheckoutSession) *CheckoutSession {
	out := &CheckoutSession{
		ID:       sess.ID,
		URL:      sess.URL,
		Status:   string(sess.Status),
		Metadata: sess.Metadata,
	}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	if out.CustomerEmail == "" {
		out.CustomerEmail = sess.CustomerEmail
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	return out
}

func wrapStripeErr(err error, message string) error {
	if stripeErr, ok := err.(*stripe.Error); ok {
		return &StripeError{
			Message:       message,
			Code:          string(stripeErr.Code),
			DeclineCode:   string(stripeErr.DeclineCode),
			RequestID:     stripeErr.RequestID,
			OriginalError: err,
		}
	}
	return fmt.Errorf("%s: %w", message, err)
}
