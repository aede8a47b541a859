package handler // public browse handlers for the careers page

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/repository"
)

// PublicHandler serves the unauthenticated careers surface: the job listing
// and individual postings.  Responses go out newest first, matching the
// ordering the live feed delivers.
type PublicHandler struct {
	Jobs *repository.JobRepo
}

func NewPublicHandler(jobs *repository.JobRepo) *PublicHandler {
	return &PublicHandler{Jobs: jobs}
}

// ListJobs handles GET /v1/jobs and returns all openings, newest first.
func (h *PublicHandler) ListJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.ListNewestFirst(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load job listings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": jobs})
}

// GetJob handles GET /v1/jobs/:id.
func (h *PublicHandler) GetJob(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	job, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrJobNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, job)
}
