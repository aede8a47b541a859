package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/verbalate/careers-api/internal/config"
	"github.com/verbalate/careers-api/internal/database"
	"github.com/verbalate/careers-api/internal/handler"
	"github.com/verbalate/careers-api/internal/queue"
	"github.com/verbalate/careers-api/internal/repository"
	"github.com/verbalate/careers-api/internal/router"
	queue_publisher "github.com/verbalate/careers-api/internal/service"
	"github.com/verbalate/careers-api/internal/submission"
	"github.com/verbalate/careers-api/internal/uploader"
	"github.com/verbalate/careers-api/internal/watch"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis is optional: without it the cache and limiter become no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	jobs := repository.NewJobRepo(db)
	apps := repository.NewApplicationRepo(db)

	jobsFeed := watch.NewFeed(jobs.ListNewestFirst)
	appsFeed := watch.NewFeed(apps.ListNewestFirst)

	up := uploader.New(cfg.UploadURL, cfg.UploadPreset, cfg.UploadFolder, cfg.UploadHost)

	flow := submission.New(apps, up, submission.Policy{
		AllowedTypes: cfg.ResumeTypes,
		MaxBytes:     cfg.ResumeMaxBytes,
		Required:     cfg.ResumeRequired,
	})
	flow.Trusted = up.Trusted
	flow.AfterPersist = func(ctx context.Context, a repository.Application) {
		appsFeed.Invalidate(ctx)
		// Best-effort broker event; a failure is logged inside the
		// publisher and never reaches the applicant.
		_ = queue_publisher.PublishApplicationReceived(ctx, queue.ApplicationReceivedEvent{
			ApplicationID: a.ID,
			JobID:         a.JobID,
			JobTitle:      a.JobTitle,
			FullName:      a.FullName,
			Email:         a.Email,
			ResumeURL:     a.ResumeURL,
			SubmittedAt:   a.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(jobs)
	applyH := handler.NewApplyHandler(jobs, flow)
	watchH := handler.NewWatchHandler(jobsFeed, appsFeed)
	adminH := &handler.AdminHandler{
		Jobs:         jobs,
		Applications: apps,
		JobsFeed:     jobsFeed,
		AppsFeed:     appsFeed,
		DownloadURL:  uploader.DownloadURL,
		TrustedURL:   up.Trusted,
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, watchH, config.LoadCacheConfig(), rdb)
	router.RegisterApply(e, applyH, cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)
	router.RegisterAdmin(e, adminH, watchH, cfg.JWTSecret)

	// Background consumer writing the application audit log; it reconnects
	// on its own and never takes the server down.
	go func() {
		if err := queue.StartApplicationConsumer(); err != nil {
			log.Printf("application consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
