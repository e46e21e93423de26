package payment

import (
	"io"
	"log/slog"
	"net/http"

	paymentsvc "borrowbox/service/payment"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc paymentsvc.Service
	Log *slog.Logger
}

// POST /v1/payments/razorpay
//
// Gateway webhook. Always answers 200 on handled events so the gateway
// stops retrying; signature failures get 400.
func (h *Controller) HandleRazorpay(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unreadable body"})
	}
	sig := c.Request().Header.Get("X-Razorpay-Signature")

	if err := h.Svc.HandleRazorpay(c.Request().Context(), sig, raw); err != nil {
		h.Log.Error("razorpay webhook", "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "webhook rejected"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "ok"})
}
