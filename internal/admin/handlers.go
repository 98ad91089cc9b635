package admin

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

// GET /admin/stats
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to gather stats"})
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /admin/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list users"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GET /admin/professionals
func (h *Handler) ListProfessionals(c echo.Context) error {
	pros, err := h.svc.ListProfessionals(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list professionals"})
	}
	return c.JSON(http.StatusOK, echo.Map{"professionals": pros})
}

type CertifyRequest struct {
	Certified bool `json:"certified"`
}

// POST /admin/professionals/:email/certify
func (h *Handler) Certify(c echo.Context) error {
	var req CertifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	pro, err := h.svc.SetCertified(c.Request().Context(), c.Param("email"), req.Certified)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "professional not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update professional"})
	}
	return c.JSON(http.StatusOK, pro)
}

// POST /admin/users/:email/suspend
func (h *Handler) Suspend(c echo.Context) error {
	return h.setSuspended(c, true)
}

// POST /admin/users/:email/activate
func (h *Handler) Activate(c echo.Context) error {
	return h.setSuspended(c, false)
}

func (h *Handler) setSuspended(c echo.Context, suspended bool) error {
	user, err := h.svc.SetSuspended(c.Request().Context(), c.Param("email"), suspended)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
	}
	return c.JSON(http.StatusOK, user)
}
