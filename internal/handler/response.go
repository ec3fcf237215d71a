package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		return c.JSON(statusFor(ae.Kind), ErrorResponse{Error: ae.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func statusFor(kind usecase.ErrorKind) int {
	switch kind {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindSignature:
		return http.StatusBadRequest
	case usecase.KindPaymentNotConfirmed:
		// transient; the caller should poll again later
		return http.StatusConflict
	case usecase.KindGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
