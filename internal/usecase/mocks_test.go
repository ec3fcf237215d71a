package usecase_test

import (
	"context"
	"fmt"
	"time"

	"app/internal/domain/model"
	"app/internal/download"
	"app/internal/events"
	"app/internal/gateway"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Error(1)
}

func (m *OrderRepoMock) Stats(ctx context.Context) (repo.OrderStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.OrderStats)
	return s, args.Error(1)
}

func (m *OrderRepoMock) SetPaymentIntent(ctx context.Context, orderID string, intentID string) (model.Order, error) {
	args := m.Called(ctx, orderID, intentID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string, intentID string) (bool, error) {
	args := m.Called(ctx, orderID, intentID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) MarkDelivered(ctx context.Context, orderID string, links []model.DownloadLink) (bool, error) {
	args := m.Called(ctx, orderID, links)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) MarkFailed(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type WebhookRepoMock struct{ mock.Mock }

func (m *WebhookRepoMock) MarkProcessed(ctx context.Context, ev model.WebhookEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) FindByID(ctx context.Context, bookID string) (model.Book, error) {
	args := m.Called(ctx, bookID)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreateIntent(ctx context.Context, amount int64, orderID string, customerEmail string) (gateway.Intent, error) {
	args := m.Called(ctx, amount, orderID, customerEmail)
	in, _ := args.Get(0).(gateway.Intent)
	return in, args.Error(1)
}

func (m *GatewayMock) GetIntent(ctx context.Context, intentID string) (gateway.Intent, error) {
	args := m.Called(ctx, intentID)
	in, _ := args.Get(0).(gateway.Intent)
	return in, args.Error(1)
}

func (m *GatewayMock) VerifyWebhook(payload []byte, signature string) (gateway.Event, error) {
	args := m.Called(payload, signature)
	ev, _ := args.Get(0).(gateway.Event)
	return ev, args.Error(1)
}

type GrantStoreMock struct{ mock.Mock }

func (m *GrantStoreMock) Save(ctx context.Context, g download.Grant, ttl time.Duration) error {
	args := m.Called(ctx, g, ttl)
	return args.Error(0)
}

func (m *GrantStoreMock) Find(ctx context.Context, token string) (download.Grant, error) {
	args := m.Called(ctx, token)
	g, _ := args.Get(0).(download.Grant)
	return g, args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, ev events.OrderEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

// silentPublisher is used by tests that do not assert on events.
type silentPublisher struct{}

func (silentPublisher) Publish(ctx context.Context, ev events.OrderEvent) error { return nil }
func (silentPublisher) Close() error                                            { return nil }

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("order-%04d", g.n)
}
