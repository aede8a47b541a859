package handler // admin back-office handlers for managing job postings

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/watch"
)

// AdminHandler bundles the repositories and live feeds the back-office
// mutates.  Every successful mutation invalidates the matching feed so
// watching admin tabs and the public careers page converge on the new
// state without polling.
type AdminHandler struct {
	Jobs         *repository.JobRepo
	Applications *repository.ApplicationRepo
	JobsFeed     *watch.Feed[repository.Job]
	AppsFeed     *watch.Feed[repository.Application]
	DownloadURL  func(string) string
	TrustedURL   func(string) bool
}

type jobForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
}

// validate enforces the posting invariant: the four descriptive fields are
// non-empty; salary stays free-form and optional.
func (f *jobForm) validate() string {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Requirements = strings.TrimSpace(f.Requirements)
	f.Location = strings.TrimSpace(f.Location)
	f.Salary = strings.TrimSpace(f.Salary)
	switch {
	case f.Title == "":
		return "title is required"
	case f.Description == "":
		return "description is required"
	case f.Requirements == "":
		return "requirements are required"
	case f.Location == "":
		return "location is required"
	}
	return ""
}

// CreateJob handles POST /v1/admin/jobs.
func (h *AdminHandler) CreateJob(c echo.Context) error {
	var body jobForm
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	job := &repository.Job{
		Title:        body.Title,
		Description:  body.Description,
		Requirements: body.Requirements,
		Location:     body.Location,
		Salary:       body.Salary,
	}
	if err := h.Jobs.Create(ctx, job); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create job"})
	}
	h.JobsFeed.Invalidate(ctx)
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob handles PUT/PATCH /v1/admin/jobs/:id as a full-field overwrite.
func (h *AdminHandler) UpdateJob(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body jobForm
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := body.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	job := &repository.Job{
		ID:           id,
		Title:        body.Title,
		Description:  body.Description,
		Requirements: body.Requirements,
		Location:     body.Location,
		Salary:       body.Salary,
	}
	if err := h.Jobs.Update(ctx, job); err != nil {
		if err == repository.ErrJobNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.JobsFeed.Invalidate(ctx)
	return c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /v1/admin/jobs/:id.  Deletion is immediate and
// irreversible; existing applications keep their title snapshot.
func (h *AdminHandler) DeleteJob(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	if err := h.Jobs.Delete(ctx, id); err != nil {
		if err == repository.ErrJobNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.JobsFeed.Invalidate(ctx)
	return c.NoContent(http.StatusNoContent)
}
