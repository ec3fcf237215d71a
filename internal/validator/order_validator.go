package validator

import (
	"errors"
	"regexp"
	"strings"

	"app/internal/domain/model"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmailLike(s string) bool {
	return emailRe.MatchString(s)
}

// ValidateCustomer checks the customer block captured at order creation.
func ValidateCustomer(c model.CustomerInfo) error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return errors.New("customer email is required")
	}
	if !IsEmailLike(email) {
		return errors.New("customer email is invalid")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		return errors.New("customer first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return errors.New("customer last name is required")
	}
	if strings.TrimSpace(c.Country) == "" {
		return errors.New("customer country is required")
	}
	return nil
}

// ValidateItems checks the line items; the order amount is derived from them,
// so a bad item must never make it into a persisted order.
func ValidateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for _, it := range items {
		if strings.TrimSpace(it.BookID) == "" {
			return errors.New("item bookId is required")
		}
		if strings.TrimSpace(it.Title) == "" {
			return errors.New("item title is required")
		}
		if it.Quantity < 1 {
			return errors.New("item quantity must be at least 1")
		}
		if it.UnitPrice <= 0 {
			return errors.New("item unit price must be positive")
		}
	}
	return nil
}
