package handler // live snapshot streams for the admin back-office and the careers page

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/watch"
)

// WatchHandler exposes the live feeds over server-sent events.  Each
// connected client is one independent subscription: it receives the full
// current snapshot on connect and again after every change, and is expected
// to replace its local state wholesale on each event.
type WatchHandler struct {
	JobsFeed *watch.Feed[repository.Job]
	AppsFeed *watch.Feed[repository.Application]
}

func NewWatchHandler(jobs *watch.Feed[repository.Job], apps *watch.Feed[repository.Application]) *WatchHandler {
	return &WatchHandler{JobsFeed: jobs, AppsFeed: apps}
}

// WatchJobs handles GET /v1/watch/jobs (public) and
// GET /v1/admin/watch/jobs.
func (h *WatchHandler) WatchJobs(c echo.Context) error {
	return stream(c, h.JobsFeed)
}

// WatchApplications handles GET /v1/admin/watch/applications.
func (h *WatchHandler) WatchApplications(c echo.Context) error {
	return stream(c, h.AppsFeed)
}

// stream subscribes the connection to the feed and forwards every snapshot
// as one SSE event until the client goes away or the feed errors.  Feed
// deliveries are serialized per subscriber, so the writes here never
// interleave.
func stream[T any](c echo.Context, feed *watch.Feed[T]) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	done := make(chan struct{})

	cancel := feed.Subscribe(c.Request().Context(),
		func(items []T) {
			payload, err := json.Marshal(items)
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(res, "event: snapshot\ndata: %s\n\n", payload); err != nil {
				// Client is gone; the deferred cancel tears the
				// subscription down once the request unwinds.
				return
			}
			res.Flush()
		},
		func(err error) {
			fmt.Fprintf(res, "event: error\ndata: %q\n\n", "live updates stopped, reconnect to resume")
			res.Flush()
			c.Logger().Errorf("watch: subscription terminated: %v", err)
			close(done)
		},
	)
	defer cancel()

	select {
	case <-c.Request().Context().Done():
	case <-done:
	}
	return nil
}
