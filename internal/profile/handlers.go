package profile

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

type SaveProfileRequest struct {
	Service  string `json:"service"`
	Bio      string `json:"bio"`
	Price    string `json:"price"`
	IDNumber string `json:"id_number"`
	License  string `json:"license"`
}

// PUT /professionals/profile
func (h *Handler) SaveProfile(c echo.Context) error {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req SaveProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	pro, err := h.svc.Save(c.Request().Context(), email, SaveParams{
		Service:  req.Service,
		Bio:      req.Bio,
		Price:    req.Price,
		IDNumber: req.IDNumber,
		License:  req.License,
	})
	switch {
	case errors.Is(err, ErrNotProfessional):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only professional accounts can publish a profile"})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pro)
}

// GET /professionals?service=&location=&min_rating=&price=
func (h *Handler) Search(c echo.Context) error {
	f := Filter{
		Service:   c.QueryParam("service"),
		Location:  c.QueryParam("location"),
		MinRating: c.QueryParam("min_rating"),
		Price:     c.QueryParam("price"),
	}

	pros, err := h.svc.Search(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list professionals"})
	}
	return c.JSON(http.StatusOK, echo.Map{"professionals": pros})
}

// GET /professionals/:email
func (h *Handler) Get(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing email"})
	}

	pro, err := h.svc.Get(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "professional not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load professional"})
	}
	return c.JSON(http.StatusOK, pro)
}
