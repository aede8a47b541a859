package handler // admin back-office handlers for reviewing applications

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/repository"
)

// applicationView is an Application plus the derived links the back-office
// renders.  DownloadURL is computed from the stored URL by the host's
// deterministic path transformation; links are only attached when the
// stored URL lives on the trusted delivery host.
type applicationView struct {
	repository.Application
	ResumeViewURL     string `json:"resume_view_url,omitempty"`
	ResumeDownloadURL string `json:"resume_download_url,omitempty"`
}

func (h *AdminHandler) viewOf(a repository.Application) applicationView {
	v := applicationView{Application: a}
	if h.TrustedURL != nil && h.TrustedURL(a.ResumeURL) {
		v.ResumeViewURL = a.ResumeURL
		if h.DownloadURL != nil {
			v.ResumeDownloadURL = h.DownloadURL(a.ResumeURL)
		}
	}
	return v
}

// ListApplications handles GET /v1/admin/applications, newest first.  The
// same data is available as a live stream via the watch endpoint; this is
// the plain one-shot variant.
func (h *AdminHandler) ListApplications(c echo.Context) error {
	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	apps, err := h.Applications.ListNewestFirst(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load applications"})
	}
	views := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		views = append(views, h.viewOf(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// GetApplication handles GET /v1/admin/applications/:id, the single-row
// detail view behind an entry in the list.
func (h *AdminHandler) GetApplication(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	a, err := h.Applications.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrApplicationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load application"})
	}
	return c.JSON(http.StatusOK, h.viewOf(*a))
}

// DeleteApplication handles DELETE /v1/admin/applications/:id.  The
// confirm step happens client-side; the API deletes immediately.
func (h *AdminHandler) DeleteApplication(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := ctxWithTimeout(c)
	defer cancel()

	if err := h.Applications.Delete(ctx, id); err != nil {
		if err == repository.ErrApplicationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete application"})
	}
	h.AppsFeed.Invalidate(ctx)
	return c.NoContent(http.StatusNoContent)
}
