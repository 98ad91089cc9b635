package marketplace

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

func sessionEmail(c echo.Context) (string, bool) {
	email, ok := c.Get("email").(string)
	return email, ok && email != ""
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, ErrNotJobOwner):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "job belongs to another client"})
	case errors.Is(err, ErrJobNotOpen),
		errors.Is(err, ErrJobNotAssigned),
		errors.Is(err, ErrQuoteMismatch),
		errors.Is(err, ErrInvalidRating):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

type PostJobRequest struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
	Timing      string `json:"timing"`
}

// POST /jobs
func (h *Handler) PostJob(c echo.Context) error {
	client, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req PostJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	job, err := h.svc.PostJob(c.Request().Context(), client, PostJobParams{
		Service:     req.Service,
		Description: req.Description,
		Budget:      req.Budget,
		Timing:      req.Timing,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, job)
}

// GET /jobs/open
func (h *Handler) OpenJobs(c echo.Context) error {
	jobs, err := h.svc.OpenJobs(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list jobs"})
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

// GET /jobs/mine
func (h *Handler) MyJobs(c echo.Context) error {
	client, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	jobs, err := h.svc.JobsByClient(c.Request().Context(), client)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list jobs"})
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": jobs})
}

// GET /jobs/:id
func (h *Handler) GetJob(c echo.Context) error {
	job, err := h.svc.Job(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

type SendQuoteRequest struct {
	Amount       float64 `json:"amount"`
	Message      string  `json:"message"`
	Availability string  `json:"availability"`
}

// POST /jobs/:id/quotes
func (h *Handler) SendQuote(c echo.Context) error {
	professional, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req SendQuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	quote, err := h.svc.SendQuote(c.Request().Context(), professional, SendQuoteParams{
		JobID:        c.Param("id"),
		Amount:       req.Amount,
		Message:      req.Message,
		Availability: req.Availability,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrJobNotOpen) {
			return writeError(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, quote)
}

// GET /jobs/:id/quotes
func (h *Handler) QuotesForJob(c echo.Context) error {
	quotes, err := h.svc.QuotesForJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list quotes"})
	}
	return c.JSON(http.StatusOK, echo.Map{"quotes": quotes})
}

// GET /quotes/mine
func (h *Handler) MyQuotes(c echo.Context) error {
	professional, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	quotes, err := h.svc.QuotesByProfessional(c.Request().Context(), professional)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list quotes"})
	}
	return c.JSON(http.StatusOK, echo.Map{"quotes": quotes})
}

// POST /jobs/:id/quotes/:quote_id/accept
func (h *Handler) AcceptQuote(c echo.Context) error {
	client, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	job, err := h.svc.AcceptQuote(c.Request().Context(), client, c.Param("id"), c.Param("quote_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

// POST /jobs/:id/complete
func (h *Handler) CompleteJob(c echo.Context) error {
	client, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	job, err := h.svc.CompleteJob(c.Request().Context(), client, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

type FeedbackRequest struct {
	Reviewed               string  `json:"reviewed"`
	ReviewerType           string  `json:"reviewer_type"`
	Rating                 float64 `json:"rating"`
	Text                   string  `json:"text"`
	ReviewedIsProfessional bool    `json:"reviewed_is_professional"`
}

// POST /jobs/:id/feedback
func (h *Handler) SubmitFeedback(c echo.Context) error {
	reviewer, ok := sessionEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil || req.Reviewed == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	review, err := h.svc.SubmitFeedback(c.Request().Context(), FeedbackParams{
		JobID:                  c.Param("id"),
		Reviewer:               reviewer,
		Reviewed:               req.Reviewed,
		ReviewerType:           req.ReviewerType,
		Rating:                 req.Rating,
		Text:                   req.Text,
		ReviewedIsProfessional: req.ReviewedIsProfessional,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, ErrInvalidRating) {
			return writeError(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, review)
}

// GET /reviews/:email
func (h *Handler) ReviewsFor(c echo.Context) error {
	reviews, err := h.svc.ReviewsFor(c.Request().Context(), c.Param("email"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list reviews"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}
