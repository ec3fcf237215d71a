package gateway

import (
	"context"
	"errors"
)

// IntentStatus is the gateway-side payment-intent state. The values mirror
// the provider's wire strings so authoritative re-queries map 1:1.
type IntentStatus string

const (
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusCanceled              IntentStatus = "canceled"
)

// TerminalFailure reports whether the intent can no longer succeed.
func (s IntentStatus) TerminalFailure() bool {
	return s == IntentStatusRequiresPaymentMethod || s == IntentStatusCanceled
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       IntentStatus
	Amount       int64 // cents as reported by the gateway
	OrderID      string
}

type EventType string

const (
	EventPaymentSucceeded EventType = "payment_intent.succeeded"
	EventPaymentFailed    EventType = "payment_intent.payment_failed"
)

// Event is a verified webhook notification. Intent fields are populated only
// for the payment event types this system acts on.
type Event struct {
	ID       string
	Type     EventType
	IntentID string
	OrderID  string
	Amount   int64
}

// ErrInvalidSignature means the webhook payload could not be authenticated.
// Nothing downstream may mutate state on such a payload.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// GatewayError carries a provider failure with a message safe to surface.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string { return e.Message }

// PaymentGateway wraps the external payment provider. Calls never retry
// automatically; retry policy belongs to the caller.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, orderID string, customerEmail string) (Intent, error)
	GetIntent(ctx context.Context, intentID string) (Intent, error)
	VerifyWebhook(payload []byte, signature string) (Event, error)
}
