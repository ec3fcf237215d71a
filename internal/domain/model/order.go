package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusFailed    OrderStatus = "failed"
)

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusFailed
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderItem is a price snapshot taken at order creation.
type OrderItem struct {
	BookID    string `json:"bookId"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"` // cents
	Quantity  int64  `json:"quantity"`
}

type CustomerInfo struct {
	Email     string `gorm:"type:varchar(255);not null;index" json:"email"`
	FirstName string `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(100);not null" json:"lastName"`
	Country   string `gorm:"type:varchar(100);not null" json:"country"`
}

type PaymentInfo struct {
	IntentID string        `gorm:"type:varchar(255);index" json:"paymentIntentId,omitempty"`
	Amount   int64         `gorm:"not null" json:"amount"` // cents, fixed at creation
	Status   PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
}

type DownloadLink struct {
	BookID      string    `json:"bookId"`
	BookTitle   string    `json:"bookTitle"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Order is looked up by OrderID everywhere in the payment flow; the numeric
// primary key stays storage-internal.
type Order struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID       string         `gorm:"type:varchar(36);not null;uniqueIndex" json:"orderId"`
	Items         []OrderItem    `gorm:"serializer:json;type:jsonb;not null" json:"items"`
	Customer      CustomerInfo   `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`
	PaymentInfo   PaymentInfo    `gorm:"embedded;embeddedPrefix:payment_" json:"paymentInfo"`
	DownloadLinks []DownloadLink `gorm:"serializer:json;type:jsonb" json:"downloadLinks"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
