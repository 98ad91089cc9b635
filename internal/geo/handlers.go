package geo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func limitParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// GET /nearby/professionals?from=&service=&limit=
func (h *Handler) NearestProfessionals(c echo.Context) error {
	ranked, err := h.svc.NearestProfessionals(c.Request().Context(), c.QueryParam("from"), c.QueryParam("service"), limitParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rank professionals"})
	}
	return c.JSON(http.StatusOK, echo.Map{"professionals": ranked})
}

// GET /nearby/jobs?from=&limit=
func (h *Handler) NearestJobs(c echo.Context) error {
	ranked, err := h.svc.NearestJobs(c.Request().Context(), c.QueryParam("from"), limitParam(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rank jobs"})
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": ranked})
}
