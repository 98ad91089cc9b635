package payments

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type TopupRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// POST /payments/topup
func (h *Handler) Topup(c echo.Context) error {
	user, ok := c.Get("email").(string)
	if !ok || user == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req TopupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	payment, err := h.svc.Topup(c.Request().Context(), user, req.Amount, req.Method)
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrUnknownMethod):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "charge failed", "payment": payment})
	}
	return c.JSON(http.StatusCreated, payment)
}

// GET /payments
func (h *Handler) History(c echo.Context) error {
	user, ok := c.Get("email").(string)
	if !ok || user == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	history, err := h.svc.History(c.Request().Context(), user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list payments"})
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": history})
}
