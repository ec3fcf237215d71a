package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	"app/internal/download"
	"app/internal/events"
	"app/internal/gateway"
	"app/internal/logger"
	repo "app/internal/repository"
)

type PaymentUsecase struct {
	orders   repo.OrderRepository
	webhooks repo.WebhookEventRepository
	gw       gateway.PaymentGateway
	issuer   *download.Issuer
	grants   download.Store
	pub      events.Publisher
	clock    Clock
}

func NewPaymentUsecase(
	orders repo.OrderRepository,
	webhooks repo.WebhookEventRepository,
	gw gateway.PaymentGateway,
	issuer *download.Issuer,
	grants download.Store,
	pub events.Publisher,
	clock Clock,
) *PaymentUsecase {
	return &PaymentUsecase{
		orders:   orders,
		webhooks: webhooks,
		gw:       gw,
		issuer:   issuer,
		grants:   grants,
		pub:      pub,
		clock:    clock,
	}
}

type CreateIntentInput struct {
	OrderID string
	Amount  int64 // cents as claimed by the caller, validated against the order
}

type CreateIntentOutput struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

func (u *PaymentUsecase) CreateIntent(ctx context.Context, in CreateIntentInput) (CreateIntentOutput, error) {
	if strings.TrimSpace(in.OrderID) == "" {
		return CreateIntentOutput{}, NewAppError(KindValidation, "orderId is required")
	}

	order, err := u.orders.FindByOrderID(ctx, in.OrderID)
	if err == repo.ErrNotFound {
		return CreateIntentOutput{}, NewAppError(KindNotFound, "order not found")
	}
	if err != nil {
		return CreateIntentOutput{}, NewAppError(KindInternal, "db error")
	}
	if order.Status != model.OrderStatusPending {
		return CreateIntentOutput{}, NewAppError(KindValidation, "order is not awaiting payment")
	}

	// the stored order, not the caller, decides the charge amount
	if in.Amount != order.PaymentInfo.Amount {
		return CreateIntentOutput{}, NewAppError(KindValidation, "amount does not match order")
	}

	intent, err := u.gw.CreateIntent(ctx, order.PaymentInfo.Amount, order.OrderID, order.Customer.Email)
	if err != nil {
		return CreateIntentOutput{}, mapGatewayErr(err)
	}

	// a second intent for the same pending order replaces the first;
	// the update is conditional, so an order settled between the load
	// above and here is left untouched
	if _, err := u.orders.SetPaymentIntent(ctx, order.OrderID, intent.ID); err != nil {
		switch err {
		case repo.ErrNotFound:
			return CreateIntentOutput{}, NewAppError(KindNotFound, "order not found")
		case repo.ErrConflict:
			return CreateIntentOutput{}, NewAppError(KindValidation, "order is not awaiting payment")
		}
		return CreateIntentOutput{}, NewAppError(KindInternal, "db error")
	}

	return CreateIntentOutput{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

type ConfirmOutput struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	DownloadLinks []model.DownloadLink `json:"downloadLinks"`
}

// Confirm re-derives the authoritative intent state from the gateway and
// applies the resulting transition. It is idempotent: settled orders are
// returned as-is without a gateway round trip.
func (u *PaymentUsecase) Confirm(ctx context.Context, orderID string, intentID string) (ConfirmOutput, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(intentID) == "" {
		return ConfirmOutput{}, NewAppError(KindValidation, "orderId and paymentIntentId are required")
	}

	order, err := u.orders.FindByOrderID(ctx, orderID)
	if err == repo.ErrNotFound {
		return ConfirmOutput{}, NewAppError(KindNotFound, "order not found")
	}
	if err != nil {
		return ConfirmOutput{}, NewAppError(KindInternal, "db error")
	}

	switch order.Status {
	case model.OrderStatusDelivered:
		return alreadyDelivered(order), nil
	case model.OrderStatusFailed:
		return paymentFailed(), nil
	}

	intent, err := u.gw.GetIntent(ctx, intentID)
	if err != nil {
		return ConfirmOutput{}, mapGatewayErr(err)
	}
	// every intent this system creates carries the order id in metadata,
	// so an empty one is just as foreign as a mismatched one
	if intent.OrderID != order.OrderID {
		return ConfirmOutput{}, NewAppError(KindValidation, "payment intent does not belong to order")
	}

	switch {
	case intent.Status == gateway.IntentStatusSucceeded:
		if intent.Amount != order.PaymentInfo.Amount {
			logger.Error("charged amount does not match order",
				"orderId", order.OrderID, "charged", intent.Amount, "expected", order.PaymentInfo.Amount)
			return ConfirmOutput{}, NewAppError(KindPrecondition, "charged amount does not match order")
		}
		return u.deliver(ctx, order, intent.ID)

	case intent.Status.TerminalFailure():
		return u.fail(ctx, order)

	default:
		// still processing on the gateway side; nothing to record yet
		return ConfirmOutput{}, NewAppError(KindPaymentNotConfirmed, "payment not confirmed yet, retry later")
	}
}

// deliver advances pending -> paid -> delivered. Each step is one conditional
// update; losing either race means another confirmation already settled the
// order, and that confirmation's links are returned instead of minting more.
func (u *PaymentUsecase) deliver(ctx context.Context, order model.Order, intentID string) (ConfirmOutput, error) {
	if order.Status == model.OrderStatusPending {
		if _, err := u.orders.MarkPaid(ctx, order.OrderID, intentID); err != nil {
			return ConfirmOutput{}, NewAppError(KindInternal, "db error")
		}
	}

	cur, err := u.orders.FindByOrderID(ctx, order.OrderID)
	if err != nil {
		return ConfirmOutput{}, NewAppError(KindInternal, "db error")
	}
	switch cur.Status {
	case model.OrderStatusDelivered:
		return alreadyDelivered(cur), nil
	case model.OrderStatusFailed:
		return paymentFailed(), nil
	case model.OrderStatusPaid:
		// fall through to link issuance
	default:
		return ConfirmOutput{}, NewAppError(KindInternal, "order did not advance to paid")
	}

	links, grants, err := u.issuer.Issue(cur)
	if err != nil {
		logger.Error("download link issuance failed", "orderId", cur.OrderID, "err", err)
		return ConfirmOutput{}, NewAppError(KindPrecondition, "download link issuance failed")
	}

	won, err := u.orders.MarkDelivered(ctx, cur.OrderID, links)
	if err != nil {
		return ConfirmOutput{}, NewAppError(KindInternal, "db error")
	}
	if !won {
		final, err := u.orders.FindByOrderID(ctx, cur.OrderID)
		if err != nil {
			return ConfirmOutput{}, NewAppError(KindInternal, "db error")
		}
		return alreadyDelivered(final), nil
	}

	for _, g := range grants {
		if err := u.grants.Save(ctx, g, download.LinkTTL); err != nil {
			logger.Error("persist download grant failed", "orderId", cur.OrderID, "err", err)
		}
	}

	cur.Status = model.OrderStatusDelivered
	cur.DownloadLinks = links
	u.publish(ctx, events.TypeOrderDelivered, cur)

	return ConfirmOutput{
		Success:       true,
		Message:       "payment confirmed, download links ready",
		DownloadLinks: links,
	}, nil
}

func (u *PaymentUsecase) fail(ctx context.Context, order model.Order) (ConfirmOutput, error) {
	won, err := u.orders.MarkFailed(ctx, order.OrderID)
	if err != nil {
		return ConfirmOutput{}, NewAppError(KindInternal, "db error")
	}
	if !won {
		cur, err := u.orders.FindByOrderID(ctx, order.OrderID)
		if err != nil {
			return ConfirmOutput{}, NewAppError(KindInternal, "db error")
		}
		switch cur.Status {
		// a completed order is never overwritten by a late failure report
		case model.OrderStatusDelivered:
			return alreadyDelivered(cur), nil
		// a concurrent success is between paid and delivered; the order is
		// not failed, the caller should come back for the links
		case model.OrderStatusPaid:
			return ConfirmOutput{}, NewAppError(KindPaymentNotConfirmed, "payment not confirmed yet, retry later")
		}
		return paymentFailed(), nil
	}

	order.Status = model.OrderStatusFailed
	u.publish(ctx, events.TypeOrderFailed, order)
	return paymentFailed(), nil
}

type WebhookOutput struct {
	Received bool   `json:"received"`
	Message  string `json:"message,omitempty"`
}

// HandleWebhook runs the confirmation path from a gateway notification.
// The signature check comes first; an unauthenticated payload mutates nothing.
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookOutput, error) {
	ev, err := u.gw.VerifyWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			return WebhookOutput{}, NewAppError(KindSignature, "invalid webhook signature")
		}
		return WebhookOutput{}, mapGatewayErr(err)
	}

	switch ev.Type {
	case gateway.EventPaymentSucceeded, gateway.EventPaymentFailed:
	default:
		// event types we do not act on are acknowledged, not errors
		logger.Info("ignoring webhook event", "type", string(ev.Type), "id", ev.ID)
		return WebhookOutput{Received: true, Message: "event ignored"}, nil
	}

	if ev.OrderID == "" {
		return WebhookOutput{}, NewAppError(KindValidation, "webhook event carries no order id")
	}

	if _, err := u.Confirm(ctx, ev.OrderID, ev.IntentID); err != nil {
		// not recorded: the provider retries the event and the
		// confirmation runs again from scratch
		return WebhookOutput{}, err
	}

	// recorded only once confirmation settled, so a transient failure
	// never consumes the event id
	err = u.webhooks.MarkProcessed(ctx, model.WebhookEvent{
		EventID:     ev.ID,
		EventType:   string(ev.Type),
		ProcessedAt: u.clock.Now(),
	})
	if err == repo.ErrConflict {
		return WebhookOutput{Received: true, Message: "event already processed"}, nil
	}
	if err != nil {
		// the confirmation transitions are idempotent; ack and let a
		// redelivery retry the insert
		logger.Warn("record webhook event failed", "id", ev.ID, "err", err)
	}
	return WebhookOutput{Received: true}, nil
}

func (u *PaymentUsecase) publish(ctx context.Context, typ string, o model.Order) {
	ev := events.OrderEvent{
		Type:       typ,
		OrderID:    o.OrderID,
		Status:     string(o.Status),
		Amount:     o.PaymentInfo.Amount,
		OccurredAt: u.clock.Now(),
	}
	if err := u.pub.Publish(ctx, ev); err != nil {
		logger.Warn("publish order event failed", "type", typ, "orderId", o.OrderID, "err", err)
	}
}

func alreadyDelivered(o model.Order) ConfirmOutput {
	return ConfirmOutput{
		Success:       true,
		Message:       "payment already confirmed",
		DownloadLinks: o.DownloadLinks,
	}
}

func paymentFailed() ConfirmOutput {
	return ConfirmOutput{
		Success:       false,
		Message:       "payment failed",
		DownloadLinks: []model.DownloadLink{},
	}
}

func mapGatewayErr(err error) error {
	var ge *gateway.GatewayError
	if errors.As(err, &ge) {
		return NewAppError(KindGateway, ge.Message)
	}
	return NewAppError(KindGateway, "payment provider error")
}
