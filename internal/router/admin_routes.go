package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/handler"
	"github.com/verbalate/careers-api/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.  All
// routes require a valid JWT whose cached role passes the admin gate; the
// role is not re-verified per navigation.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, w *handler.WatchHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(),
	)

	// ---- Jobs ----
	g.POST("/jobs", a.CreateJob)
	g.PUT("/jobs/:id", a.UpdateJob)
	g.PATCH("/jobs/:id", a.UpdateJob) // full overwrite either way
	g.DELETE("/jobs/:id", a.DeleteJob)

	// ---- Applications ----
	g.GET("/applications", a.ListApplications)
	g.GET("/applications/:id", a.GetApplication)
	g.DELETE("/applications/:id", a.DeleteApplication)

	// ---- Live streams ----
	g.GET("/watch/jobs", w.WatchJobs)
	g.GET("/watch/applications", w.WatchApplications)
}
