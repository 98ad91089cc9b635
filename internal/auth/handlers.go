package auth

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

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	err := h.svc.Signup(c.Request().Context(), SignupParams{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: req.Password,
		Type:     req.Type,
	})
	switch {
	case errors.Is(err, ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case errors.Is(err, ErrUnknownType):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type must be Client or Professional"})
	case err != nil:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent"})
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and code required"})
	}

	token, err := h.svc.Verify(c.Request().Context(), req.Email, req.Code)
	switch {
	case errors.Is(err, ErrBadCode):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid verification code"})
	case errors.Is(err, ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *Handler) ResendCode(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	if err := h.svc.ResendCode(c.Request().Context(), req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no pending signup for that email"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "verification code sent"})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password required"})
	}

	token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case errors.Is(err, ErrAccountSuspended):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account suspended"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func (h *Handler) Me(c echo.Context) error {
	email, ok := c.Get("email").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	user, err := h.svc.Account(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load account"})
	}
	return c.JSON(http.StatusOK, user)
}
