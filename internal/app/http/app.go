package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mw "psytech/internal/middleware"
	httprouters "psytech/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const contactRateLimitScope = "contact"

type Options struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ShutdownTimeout   time.Duration
	CORSOrigins       []string
	AdminPassword     string
	AdminPasswordHash string
	MediaDir          string
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	limiter mw.RateLimiter
	opts    Options
}

// New builds the echo server. limiter may be nil to disable contact rate limiting.
func New(log *slog.Logger, opts Options, routers *httprouters.Routers, limiter mw.RateLimiter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout

	e.Validator = httprouters.NewValidator()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Recover())
	e.Use(mw.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogMethod:   true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("statsviz start with error", slog.String("error", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		limiter: limiter,
		opts:    opts,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info("starting http server",
		slog.String("op", op),
		slog.String("addr", s.addr()),
	)

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	optCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefully: %w", op, err)
	}

	return nil
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) BuildRouters() {
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	if s.opts.MediaDir != "" {
		s.e.Static("/uploads", s.opts.MediaDir)
	}

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	api := s.e.Group("/api")
	{
		api.GET("", s.routers.Root)
		api.GET("/", s.routers.Root)
		api.GET("/health", s.routers.Health)
		api.POST("/status", s.routers.CreateStatusCheck)
		api.GET("/status", s.routers.ListStatusChecks)

		if s.limiter != nil {
			api.POST("/contact", s.routers.SubmitContact, mw.RateLimit(s.log, s.limiter, contactRateLimitScope))
		} else {
			api.POST("/contact", s.routers.SubmitContact)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", s.routers.ListPublishedPosts)
			posts.GET("/tags/all", s.routers.TagCounts)
			posts.GET("/:slug", s.routers.GetPublishedPost)
		}

		admin := api.Group("/admin", mw.AdminAuth(s.log, s.opts.AdminPassword, s.opts.AdminPasswordHash))
		{
			admin.GET("/posts", s.routers.ListAllPosts)
			admin.POST("/posts", s.routers.CreatePost)
			admin.POST("/posts/generate-ai", s.routers.GenerateAIPost)
			admin.GET("/posts/:id", s.routers.GetPost)
			admin.PUT("/posts/:id", s.routers.UpdatePost)
			admin.DELETE("/posts/:id", s.routers.DeletePost)
			admin.POST("/posts/:id/publish", s.routers.PublishPost)
			admin.POST("/posts/:id/unpublish", s.routers.UnpublishPost)

			admin.GET("/contacts", s.routers.ListContacts)
			admin.GET("/contacts/:id", s.routers.GetContact)

			admin.GET("/scheduler/status", s.routers.SchedulerStatus)
		}
	}
}
