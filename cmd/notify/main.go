package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-notify/pkg/config"
	"github.com/tendant/simple-notify/pkg/database"
	"github.com/tendant/simple-notify/pkg/digest"
	"github.com/tendant/simple-notify/pkg/httpclient"
	"github.com/tendant/simple-notify/pkg/inventory"
	"github.com/tendant/simple-notify/pkg/notification"
	notificationapi "github.com/tendant/simple-notify/pkg/notification/api"
	"github.com/tendant/simple-notify/pkg/queue"
	"github.com/tendant/simple-notify/pkg/router"
	"github.com/tendant/simple-notify/pkg/savedsearch"
	"github.com/tendant/simple-notify/pkg/scenario"
	"github.com/tendant/simple-notify/pkg/unsubscribe"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Notification Service")

	cfg, err := config.Load(findEnvFile())
	if err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo, closeRepo := initializeRepository(ctx, cfg.Database)
	defer closeRepo()

	notificationService, err := notification.NewNotificationService(repo,
		notification.WithChannel(notification.Channel(cfg.Notification.Channel)),
		notification.WithSMTP(cfg.Email.ToSMTPConfig()),
		notification.WithSender(cfg.Email.From),
	)
	if err != nil {
		slog.Error("Failed to create notification service", "error", err)
		os.Exit(1)
	}

	topics, err := notification.NewTopicRegistry(notification.DefaultTopics()...)
	if err != nil {
		slog.Error("Failed to register topics", "error", err)
		os.Exit(1)
	}
	renderer, err := notification.NewTemplateRenderer(nil, "")
	if err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	client := httpclient.New()
	vehicles, err := inventory.NewClient(cfg.Collaborators.InventoryBaseURL,
		inventory.WithHTTPClient(client),
		inventory.WithCacheTTL(cfg.Collaborators.InventoryCacheTTL),
	)
	if err != nil {
		slog.Error("Failed to create inventory client", "error", err)
		os.Exit(1)
	}
	defer vehicles.Close()

	encryptor, err := unsubscribe.NewEncryptor(cfg.Notification.UnsubscribePassphrase)
	if err != nil {
		slog.Error("Failed to create unsubscribe encryptor", "error", err)
		os.Exit(1)
	}

	scenarios, err := scenario.New(scenario.Deps{
		Notifier:     notificationService,
		Topics:       topics,
		Renderer:     renderer,
		Inventory:    vehicles,
		Unsubscribe:  encryptor,
		SalesMailbox: cfg.Notification.SalesMailbox,
		WebAppHost:   cfg.Notification.WebAppHost,
	})
	if err != nil {
		slog.Error("Failed to create scenario services", "error", err)
		os.Exit(1)
	}

	q := initializeQueue(ctx, cfg.Queue)
	defer q.Close()

	processor := digest.NewProcessor(scenarios.CustomerSavedSearch)
	unsubscribeDigest, err := q.Subscribe(ctx, queue.SubjectSavedSearchDigest, processor.Handle)
	if err != nil {
		slog.Error("Failed to subscribe digest processor", "subject", queue.SubjectSavedSearchDigest, "error", err)
		os.Exit(1)
	}
	defer unsubscribeDigest()

	if cfg.Schedule.DigestEnabled {
		source, err := savedsearch.NewHTTPSource(cfg.Collaborators.SavedSearchBaseURL, client)
		if err != nil {
			slog.Error("Failed to create saved search source", "error", err)
			os.Exit(1)
		}
		scheduler, err := digest.NewScheduler(cfg.Schedule.DigestCron, digest.NewAggregator(source, q))
		if err != nil {
			slog.Error("Failed to create digest scheduler", "spec", cfg.Schedule.DigestCron, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			scheduler.Stop(stopCtx)
		}()
	} else {
		slog.Info("Saved search digest scheduling disabled")
	}

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)
	router.SetupRoutes(server.R, router.Config{
		Prefix:             router.DefaultPrefix,
		NotificationHandle: notificationapi.NewHandle(notificationService, scenarios),
		TokenAuth:          router.NewTokenAuth(cfg.API.Secret),
	})

	slog.Info(strings.Repeat("=", 60))
	slog.Info("Notification Service Ready",
		"channel", cfg.Notification.Channel,
		"prefix", router.DefaultPrefix,
		"digest_schedule", cfg.Schedule.DigestCron,
	)
	slog.Info(strings.Repeat("=", 60))

	server.Run()
}

// initializeRepository returns the Postgres repository when a database host
// is configured and the in-memory repository otherwise.
func initializeRepository(ctx context.Context, dbConfig config.DatabaseConfig) (notification.NotificationRepository, func()) {
	if !dbConfig.Enabled() {
		slog.Warn("No database configured, notifications are kept in memory")
		return notification.NewInMemNotificationRepository(), func() {}
	}

	if err := database.RunMigrations(ctx, dbConfig.ToDatabaseURL()); err != nil {
		slog.Error("Failed to run migrations", "host", dbConfig.Host, "database", dbConfig.Database, "error", err)
		os.Exit(1)
	}

	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed to connect to database",
			"host", dbConfig.Host,
			"port", dbConfig.Port,
			"database", dbConfig.Database,
			"schema", dbConfig.Schema,
			"error", err)
		os.Exit(1)
	}
	slog.Info("Database connected", "database", dbConfig.Database, "schema", dbConfig.Schema)

	return notification.NewPostgresNotificationRepository(pool), pool.Close
}

func initializeQueue(ctx context.Context, queueConfig config.QueueConfig) queue.Queue {
	if queueConfig.NatsURL == "" {
		slog.Warn("NATS_URL not set, using in-process queue")
		return queue.NewMemoryQueue()
	}

	q, err := queue.ConnectNats(ctx, queueConfig.NatsURL, queueConfig.Stream)
	if err != nil {
		slog.Error("Failed to connect to NATS", "url", queueConfig.NatsURL, "error", err)
		os.Exit(1)
	}
	return q
}

// findEnvFile looks for .env next to the executable, then in the working
// directory.
func findEnvFile() string {
	if execPath, err := os.Executable(); err == nil {
		envFile := filepath.Join(filepath.Dir(execPath), ".env")
		if _, err := os.Stat(envFile); err == nil {
			return envFile
		}
	}

	cwd, _ := os.Getwd()
	envFile := filepath.Join(cwd, ".env")
	if _, err := os.Stat(envFile); err != nil {
		slog.Debug("No .env file found (using environment variables or defaults)")
		return ""
	}
	slog.Info("Loading configuration from .env file", "path", envFile)
	return envFile
}
