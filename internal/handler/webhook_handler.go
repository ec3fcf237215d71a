package handler

import (
	"io"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// request bodies larger than this are not legitimate gateway webhooks
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	uc *usecase.PaymentUsecase
}

func NewWebhookHandler(uc *usecase.PaymentUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/webhooks/stripe", h.stripe)
}

func (h *WebhookHandler) stripe(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
