// Package main is the entrypoint for the Lumeo API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lumeo/lumeo/internal/cache"
	"github.com/lumeo/lumeo/internal/config"
	"github.com/lumeo/lumeo/internal/editor"
	"github.com/lumeo/lumeo/internal/handler"
	"github.com/lumeo/lumeo/internal/metrics"
	"github.com/lumeo/lumeo/internal/middleware"
	"github.com/lumeo/lumeo/internal/repository"
	"github.com/lumeo/lumeo/internal/server"
	"github.com/lumeo/lumeo/internal/service"
)

const version = "1.0.0"

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	identityService := service.NewIdentityService(repo, cfg.SignupCredits, metricsRecorder)
	creditService := service.NewCreditService(repo, metricsRecorder)
	conversationService := service.NewConversationService(repo)
	projectService := service.NewProjectService(repo)

	// External editor token issuer
	editorClient := editor.NewClient(editor.Options{
		APIURL:   cfg.EditorAPIURL,
		APIKey:   cfg.EditorAPIKey,
		Mode:     cfg.EditorMode,
		Origin:   cfg.EditorOrigin,
		Theme:    cfg.EditorTheme,
		TabLimit: cfg.EditorTabLimit,
	})

	// Initialize handlers
	rootHandler := handler.NewRootHandler(version)
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(identityService, logger)
	creditHandler := handler.NewCreditHandler(creditService, logger)
	conversationHandler := handler.NewConversationHandler(conversationService, logger)
	projectHandler := handler.NewProjectHandler(projectService, logger)
	editorHandler := handler.NewEditorHandler(editorClient, logger, metricsRecorder)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(routerDeps{
		root:          rootHandler,
		health:        healthHandler,
		auth:          authHandler,
		credits:       creditHandler,
		conversations: conversationHandler,
		projects:      projectHandler,
		editor:        editorHandler,
		metrics:       metricsHandler,
		identity:      identityService,
		cache:         cacheClient,
		recorder:      metricsRecorder,
		cfg:           cfg,
		logger:        logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	root          *handler.RootHandler
	health        *handler.HealthHandler
	auth          *handler.AuthHandler
	credits       *handler.CreditHandler
	conversations *handler.ConversationHandler
	projects      *handler.ProjectHandler
	editor        *handler.EditorHandler
	metrics       *handler.MetricsHandler
	identity      *service.IdentityService
	cache         *cache.Cache
	recorder      metrics.Recorder
	cfg           *config.Config
	logger        *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: deps.cfg.IsDevelopment(),
	}))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = deps.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no session required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)

	// Root info endpoint
	r.Get("/", deps.root.Info)

	// Session middleware configuration
	sessionCfg := middleware.SessionConfig{
		Logger:   deps.logger,
		Identity: deps.identity,
		Cache:    deps.cache,
		Metrics:  deps.recorder,
	}

	// Rate limit middleware configuration
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:       deps.logger,
		Cache:        deps.cache,
		APIEnabled:   deps.cfg.RateLimitAPIEnabled,
		LoginEnabled: deps.cfg.RateLimitLoginEnabled,
		LoginRPS:     deps.cfg.RateLimitLoginRPS,
		LoginBurst:   deps.cfg.RateLimitLoginBurst,
	}

	// Demo login with IP-based rate limiting (no session required)
	r.With(middleware.RateLimitLogin(rateLimitCfg)).Post("/auth/login", deps.auth.Login)

	// Session-scoped routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessionCfg))
		r.Use(middleware.RateLimitAPI(rateLimitCfg))

		r.Get("/conversations", deps.conversations.List)

		r.Route("/credits", func(r chi.Router) {
			r.Get("/balance", deps.credits.Balance)
			r.Get("/history", deps.credits.History)
			r.Post("/spend", deps.credits.Spend)
		})

		r.Post("/editor/token", deps.editor.Token)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", deps.projects.List)
			r.Post("/", deps.projects.Create)
			r.Post("/{id}/star", deps.projects.Star(true))
			r.Delete("/{id}/star", deps.projects.Star(false))
			r.Delete("/{id}", deps.projects.Delete)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
