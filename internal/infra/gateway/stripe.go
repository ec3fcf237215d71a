package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	gw "app/internal/gateway"
	"app/internal/logger"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeGateway implements gateway.PaymentGateway on the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey string, webhookSecret string, timeout time.Duration) *StripeGateway {
	cfg := &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}

	api := &client.API{}
	api.Init(secretKey, backends)

	return &StripeGateway{api: api, webhookSecret: webhookSecret}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, orderID string, customerEmail string) (gw.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(amount),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(customerEmail),
		Description:  stripe.String(fmt.Sprintf("Ebook purchase - order %s", orderID)),
	}
	params.AddMetadata("order_id", orderID)
	params.AddMetadata("customer_email", customerEmail)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return gw.Intent{}, wrapStripeErr("create payment intent", err)
	}
	return fromPaymentIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (gw.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return gw.Intent{}, wrapStripeErr("retrieve payment intent", err)
	}
	return fromPaymentIntent(pi), nil
}

// VerifyWebhook authenticates the payload before anything downstream may act
// on it. A missing or invalid signature is a hard failure.
func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (gw.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		logger.Warn("webhook signature verification failed", "err", err)
		return gw.Event{}, gw.ErrInvalidSignature
	}

	out := gw.Event{
		ID:   event.ID,
		Type: gw.EventType(event.Type),
	}

	switch out.Type {
	case gw.EventPaymentSucceeded, gw.EventPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return gw.Event{}, &gw.GatewayError{Message: "malformed webhook payload"}
		}
		out.IntentID = pi.ID
		out.OrderID = pi.Metadata["order_id"]
		out.Amount = pi.Amount
	}

	return out, nil
}

func fromPaymentIntent(pi *stripe.PaymentIntent) gw.Intent {
	return gw.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       gw.IntentStatus(pi.Status),
		Amount:       pi.Amount,
		OrderID:      pi.Metadata["order_id"],
	}
}

// wrapStripeErr logs provider detail and returns a message that carries no
// secrets or raw provider internals.
func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		logger.Warn("stripe request failed", "op", op, "code", sErr.Code, "type", sErr.Type)
		return &gw.GatewayError{Message: fmt.Sprintf("payment provider rejected %s", op)}
	}
	logger.Warn("stripe request failed", "op", op, "err", err)
	return &gw.GatewayError{Message: fmt.Sprintf("payment provider unavailable for %s", op)}
}
