package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/session"
	"github.com/verbalate/careers-api/internal/submission"
)

// JobFinder is the slice of the job repository the apply handler needs.
type JobFinder interface {
	GetByID(ctx context.Context, id uint64) (*repository.Job, error)
}

// ApplyHandler accepts application submissions from authenticated visitors
// and hands them to the submission flow.
type ApplyHandler struct {
	Jobs JobFinder
	Flow *submission.Flow
}

func NewApplyHandler(jobs JobFinder, flow *submission.Flow) *ApplyHandler {
	return &ApplyHandler{Jobs: jobs, Flow: flow}
}

// Apply handles POST /v1/jobs/:id/apply.  The body is a multipart form with
// full_name, email, optional phone, cover_letter and job_title, plus an
// optional resume file part.  The flow reports one specific failure per
// invocation; this handler only translates it to a status code and a
// user-facing message.
func (h *ApplyHandler) Apply(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": submission.ErrInvalidTarget.Error()})
	}

	ctx := c.Request().Context()

	// Refresh the title snapshot when the posting still exists.  A job
	// deleted while the applicant's form was open is accepted anyway with
	// the client's stale snapshot; the reference is intentionally not
	// enforced.
	job, err := h.Jobs.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrJobNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		job = &repository.Job{ID: id, Title: c.FormValue("job_title")}
	}

	form := submission.Form{
		FullName:    c.FormValue("full_name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		CoverLetter: c.FormValue("cover_letter"),
	}

	var resume *submission.Resume
	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read resume upload"})
		}
		defer src.Close()
		resume = &submission.Resume{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     src,
		}
	}

	app, err := h.Flow.Submit(ctx, job, session.FromContext(c), form, resume)
	if err != nil {
		return writeSubmissionError(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

// writeSubmissionError maps the flow's error taxonomy onto HTTP responses.
// Every failure keeps its human-readable cause so applicants can retry the
// right step.
func writeSubmissionError(c echo.Context, err error) error {
	var vErr *submission.ValidationError
	var upErr *submission.UploadError
	var pErr *submission.PersistError
	switch {
	case errors.Is(err, submission.ErrInvalidTarget):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, submission.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Error()})
	case errors.As(err, &upErr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": upErr.Error()})
	case errors.As(err, &pErr):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": pErr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to submit application"})
	}
}

// ctxWithTimeout bounds request-scoped DB work the same way the rest of the
// handlers do.
func ctxWithTimeout(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
