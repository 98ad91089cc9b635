package messaging

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sudo-init-do/hirewise/internal/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type SendRequest struct {
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

// POST /messages
func (h *Handler) Send(c echo.Context) error {
	sender, ok := c.Get("email").(string)
	if !ok || sender == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req SendRequest
	if err := c.Bind(&req); err != nil || req.Receiver == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	msg, err := h.svc.Send(c.Request().Context(), sender, req.Receiver, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "receiver not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, msg)
}

// GET /messages
func (h *Handler) Inbox(c echo.Context) error {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	msgs, err := h.svc.Inbox(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list messages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}

// GET /messages/:with
func (h *Handler) Thread(c echo.Context) error {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	msgs, err := h.svc.Thread(c.Request().Context(), email, c.Param("with"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list messages"})
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": msgs})
}
