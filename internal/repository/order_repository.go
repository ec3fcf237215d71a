package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")

type OrderStats struct {
	TotalOrders     int64 `json:"totalOrders"`
	PendingOrders   int64 `json:"pendingOrders"`
	CompletedOrders int64 `json:"completedOrders"`
	TotalRevenue    int64 `json:"totalRevenue"` // cents, delivered orders only
}

// OrderRepository persists the order aggregate. All lookups in the payment
// flow key on the business orderId, never the storage id.
//
// The Mark* methods are conditional single-row updates: they apply only when
// the order is still in the expected prior status and report false otherwise.
// That compare-and-swap is what keeps concurrent confirmations of the same
// order (double webhook delivery, client + webhook race) safe.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByOrderID(ctx context.Context, orderID string) (model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	Stats(ctx context.Context) (OrderStats, error)

	// SetPaymentIntent records the gateway intent on a pending order.
	// A different intent id replaces the previous one. Like the Mark*
	// methods it is conditional on status: ErrConflict when the order
	// settled under a concurrent confirmation, ErrNotFound when missing.
	SetPaymentIntent(ctx context.Context, orderID string, intentID string) (model.Order, error)

	// MarkPaid: pending -> paid, payment completed.
	MarkPaid(ctx context.Context, orderID string, intentID string) (bool, error)
	// MarkDelivered: paid -> delivered, persisting the links in the same update.
	MarkDelivered(ctx context.Context, orderID string, links []model.DownloadLink) (bool, error)
	// MarkFailed: pending -> failed. Terminal states are never overwritten.
	MarkFailed(ctx context.Context, orderID string) (bool, error)
}
