package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpapp "psytech/internal/app/http"
	"psytech/internal/config"
	"psytech/internal/lib/ai"
	"psytech/internal/lib/logger/sl"
	mw "psytech/internal/middleware"
	"psytech/internal/notify"
	"psytech/internal/repository"
	"psytech/internal/scheduler"
	contact "psytech/internal/services/contact_service"
	generator "psytech/internal/services/generator_service"
	post "psytech/internal/services/post_service"
	status "psytech/internal/services/status_service"
	filestorage "psytech/internal/storage/filestorage"
	"psytech/internal/storage/mongodb"
	"psytech/internal/storage/postgresql"
	redisapp "psytech/internal/storage/redis"
	httprouters "psytech/internal/transport/http"
	"psytech/internal/worker"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Pool       *worker.Pool
	Scheduler  *scheduler.Scheduler
	closers    []func(ctx context.Context) error
}

// New wires every component from cfg. It panics when a required backend
// cannot be reached.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) *App {
	a := &App{log: log}

	repo, err := a.openStorage(ctx, cfg)
	if err != nil {
		panic(err)
	}
	repo = repo.WithCache(cfg.Cache.TTL)

	var limiter mw.RateLimiter
	if cfg.Redis.RedisAddr != "" && cfg.RateLimit.Requests > 0 {
		client := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
		if err := client.HealthCheck(ctx); err != nil {
			log.Warn("redis unreachable, contact rate limit will fail open", sl.Err(err))
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		limiter = repository.NewRedisRateLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	a.Pool = worker.NewPool(log, cfg.Worker.Workers, cfg.Worker.QueueSize)

	webhook := notify.NewWebhookClient(log, notify.WebhookConfig{
		URL:         cfg.Webhook.URL,
		MaxAttempts: cfg.Webhook.MaxAttempts,
		BaseDelay:   cfg.Webhook.BaseDelay,
		Timeout:     cfg.Webhook.Timeout,
	})

	var sender notify.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = notify.NewResendSender(cfg.Email.ResendAPIKey)
	}
	notifier := notify.NewContactNotifier(log, sender, cfg.Email.Sender, cfg.Email.NotificationEmail)

	postService := post.NewPostService(log, repo.Post, a.Pool, webhook, cfg.PublicBaseURL)
	contactService := contact.NewContactService(log, repo.Contact, a.Pool, notifier)
	statusService := status.NewStatusService(log, repo.Status)

	var (
		text   ai.TextGenerator
		images ai.ImageGenerator
	)
	if cfg.AIReady() {
		client := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.TextModel, cfg.AI.ImageModel)
		text = client
		if cfg.AI.Images {
			images = client
		}
	}

	gen := generator.NewGeneratorService(log, text, images, postService, a.Pool, generator.GeneratorConfig{
		AutoPublish: cfg.AI.AutoPublish,
		Language:    cfg.AI.Language,
	})

	if cfg.Media.Dir != "" {
		media, err := filestorage.NewLocalFileStorage(cfg.Media.Dir, cfg.Media.BaseURL)
		if err != nil {
			panic(err)
		}
		gen.WithImageStore(media)
	}

	a.Scheduler, err = scheduler.New(log, cfg.AI.Schedule, cfg.AI.AutoPublish, gen.Enqueue)
	if err != nil {
		panic(err)
	}

	routers := httprouters.NewRouter(log, cfg.ServiceName, postService, contactService, statusService, gen, a.Scheduler)

	a.HTTPServer = httpapp.New(log, httpapp.Options{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
		AdminPassword:     cfg.Admin.Password,
		AdminPasswordHash: cfg.Admin.PasswordHash,
		MediaDir:          cfg.Media.Dir,
	}, routers, limiter)
	a.HTTPServer.BuildRouters()

	log.Info("application wired",
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("ai", gen.Enabled()),
		slog.Bool("webhook", webhook.Enabled()),
		slog.Bool("rate_limit", limiter != nil),
	)

	return a
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config) (*repository.Repository, error) {
	const op = "app.openStorage"

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		st, err := mongodb.New(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, st.Stop)

		if err := st.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return repository.NewMongoRepository(st.Database()), nil
	default:
		st, err := postgresql.New(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.closers = append(a.closers, func(context.Context) error {
			st.Stop()
			return nil
		})

		if err := st.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return repository.NewPostgresRepository(st.DB()), nil
	}
}

// Start launches the background workers and the scheduler. The HTTP server
// is run separately with HTTPServer.MustRun.
func (a *App) Start() {
	a.Pool.Start()
	a.Scheduler.Start()
}

// Stop shuts components down in reverse dependency order.
func (a *App) Stop(ctx context.Context) error {
	const op = "app.Stop"

	var errs []error

	if err := a.HTTPServer.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := a.Scheduler.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := a.Pool.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		a.log.Error("shutdown finished with errors", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
