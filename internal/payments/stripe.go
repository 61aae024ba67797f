// Package payments wraps the Stripe client for checkout session creation
// and webhook signature verification.
package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var (
	clientMu sync.Mutex
	client   *stripe.Client
)

// StripeClient returns a process-wide client built from the given secret
// key. The first caller wins; subsequent keys are ignored.
func StripeClient(secretKey string) *stripe.Client {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client == nil {
		client = stripe.NewClient(secretKey)
	}
	return client
}

// SetStripeClient overrides the shared client, for tests.
func SetStripeClient(c *stripe.Client) {
	clientMu.Lock()
	defer clientMu.Unlock()
	client = c
}

// CheckoutParams describes one booking to be paid for. AmountEUR is the
// whole-euro total; Stripe receives it in cents.
type CheckoutParams struct {
	BookingID   string
	Email       string
	AmountEUR   int
	Description string
	Origin      string
}

// CheckoutProvider is the slice of Stripe behavior the checkout flow needs,
// kept small so services can stub it in tests.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
}

// StripeProvider implements CheckoutProvider against the real API.
type StripeProvider struct {
	Client *stripe.Client
}

func (s *StripeProvider) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionCreateParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyEUR)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(int64(p.AmountEUR) * 100),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(p.Email),
		SuccessURL:    stripe.String(p.Origin + "/booking-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.Origin + "/?canceled=1"),
		Metadata: map[string]string{
			"bookingId": p.BookingID,
		},
	}

	sess, err := s.Client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return sess, nil
}

func (s *StripeProvider) RetrieveCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	sess, err := s.Client.V1CheckoutSessions.Retrieve(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}
	return sess, nil
}

// VerifyWebhook checks the Stripe-Signature header against the endpoint
// secret and returns the parsed event.
func VerifyWebhook(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verify webhook signature: %w", err)
	}
	return event, nil
}
