package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	uc *usecase.PaymentUsecase
}

func NewPaymentHandler(uc *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type CreateIntentRequest struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

type ConfirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	OrderID         string `json:"orderId"`
}

func (h *PaymentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/payments/create-intent", h.createIntent)
	g.POST("/payments/confirm", h.confirm)
}

func (h *PaymentHandler) createIntent(c echo.Context) error {
	var req CreateIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateIntent(c.Request().Context(), usecase.CreateIntentInput{
		OrderID: req.OrderID,
		Amount:  req.Amount,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) confirm(c echo.Context) error {
	var req ConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Confirm(c.Request().Context(), req.OrderID, req.PaymentIntentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
