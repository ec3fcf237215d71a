package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable error classification surfaced to the boundary.
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindGateway             ErrorKind = "gateway"
	KindSignature           ErrorKind = "signature"
	KindPaymentNotConfirmed ErrorKind = "payment_not_confirmed"
	KindPrecondition        ErrorKind = "precondition"
	KindInternal            ErrorKind = "internal"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewAppError(kind ErrorKind, message string) error {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}
