package usecase

import (
	"context"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/events"
	"app/internal/logger"
	repo "app/internal/repository"
	"app/internal/validator"
)

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type OrderUsecase struct {
	orders repo.OrderRepository
	pub    events.Publisher
	idGen  IDGenerator
	clock  Clock
}

func NewOrderUsecase(orders repo.OrderRepository, pub events.Publisher, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{
		orders: orders,
		pub:    pub,
		idGen:  idGen,
		clock:  clock,
	}
}

type CreateOrderInput struct {
	Items    []model.OrderItem
	Customer model.CustomerInfo
}

func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (model.Order, error) {
	if err := validator.ValidateItems(in.Items); err != nil {
		return model.Order{}, NewAppError(KindValidation, err.Error())
	}
	if err := validator.ValidateCustomer(in.Customer); err != nil {
		return model.Order{}, NewAppError(KindValidation, err.Error())
	}

	// amount is computed once here and never recomputed
	var amount int64
	for _, it := range in.Items {
		amount += it.UnitPrice * it.Quantity
	}

	now := u.clock.Now()
	order := model.Order{
		OrderID: u.idGen.NewID(),
		Items:   in.Items,
		Customer: model.CustomerInfo{
			Email:     strings.TrimSpace(in.Customer.Email),
			FirstName: strings.TrimSpace(in.Customer.FirstName),
			LastName:  strings.TrimSpace(in.Customer.LastName),
			Country:   strings.TrimSpace(in.Customer.Country),
		},
		PaymentInfo: model.PaymentInfo{
			Amount: amount,
			Status: model.PaymentStatusPending,
		},
		DownloadLinks: []model.DownloadLink{},
		Status:        model.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return model.Order{}, NewAppError(KindInternal, "db error")
	}

	u.publish(ctx, events.TypeOrderCreated, created)
	return created, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewAppError(KindValidation, "orderId is required")
	}

	o, err := u.orders.FindByOrderID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewAppError(KindNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewAppError(KindInternal, "db error")
	}
	return o, nil
}

func (u *OrderUsecase) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" || !validator.IsEmailLike(email) {
		return []model.Order{}, NewAppError(KindValidation, "invalid email")
	}

	orders, err := u.orders.ListByEmail(ctx, email)
	if err != nil {
		return []model.Order{}, NewAppError(KindInternal, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		return []model.Order{}, NewAppError(KindValidation, "invalid limit")
	}

	orders, err := u.orders.ListRecent(ctx, limit)
	if err != nil {
		return []model.Order{}, NewAppError(KindInternal, "db error")
	}
	return orders, nil
}

func (u *OrderUsecase) Stats(ctx context.Context) (repo.OrderStats, error) {
	s, err := u.orders.Stats(ctx)
	if err != nil {
		return repo.OrderStats{}, NewAppError(KindInternal, "db error")
	}
	return s, nil
}

// events are best-effort; an unreachable broker never fails the request
func (u *OrderUsecase) publish(ctx context.Context, typ string, o model.Order) {
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
