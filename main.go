package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/imageutil"
	"storefront/internal/logging"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/internal/storage"
	"storefront/internal/upload"
	"storefront/pkg/rabbitmq"
)

const (
	preloadTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
	kafkaGroupID    = "storefront-order-log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// application bundles the HTTP app with everything that must be released on shutdown.
type application struct {
	app      *fiber.App
	store    *storage.Store
	consumer events.Consumer
	closers  []func() error
}

func (a *application) close(ctx context.Context, logger *slog.Logger) {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn("error releasing resource", "error", err)
		}
	}
	if err := a.store.Close(ctx); err != nil {
		logger.Warn("error closing store", "error", err)
	}
}

// build wires storage, the event broker, the image host and the HTTP layer.
func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a := &application{store: store}

	if cfg.SeedOnStart {
		if err := services.Seed(ctx, store.Users, store.Categories, logger); err != nil {
			a.close(ctx, logger)
			return nil, fmt.Errorf("failed to seed: %w", err)
		}
	}

	publisher, err := openBroker(cfg, logger, a)
	if err != nil {
		a.close(ctx, logger)
		return nil, err
	}

	var host services.ImageHost = upload.Unconfigured{}
	if cfg.CloudinaryConfigured() {
		cld, err := upload.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.UploadFolder)
		if err != nil {
			a.close(ctx, logger)
			return nil, fmt.Errorf("failed to configure image host: %w", err)
		}
		host = cld
	} else {
		logger.Warn("image host credentials missing, uploads are disabled")
	}

	a.app = server.New(server.Services{
		Auth:       services.NewAuthService(store.Users, cfg.JWTSecret, cfg.JWTTTL, logger),
		Products:   services.NewProductService(store.Products, imageutil.NewHTTPPreloader(preloadTimeout, logger), logger),
		Categories: services.NewCategoryService(store.Categories),
		Orders:     services.NewOrderService(store.Orders, store.Users, publisher, logger),
		Dashboard:  services.NewDashboardService(store.Products, store.Users, store.Orders),
		Uploads:    services.NewUploadService(host, logger),
	}, server.Options{
		Logger:    logger,
		StaticDir: cfg.StaticDir,
		AccessLog: true,
	})
	return a, nil
}

func openBroker(cfg *config.Config, logger *slog.Logger, a *application) (events.Publisher, error) {
	switch cfg.EventsBroker {
	case "rabbitmq":
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitQueue}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		rabbit := events.NewRabbit(client)
		a.consumer = rabbit
		a.closers = append(a.closers, rabbit.Close)
		return rabbit, nil
	case "kafka":
		producer := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		consumer := events.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, kafkaGroupID, logger)
		a.consumer = consumer
		a.closers = append(a.closers, producer.Close, consumer.Close)
		return producer, nil
	default:
		return events.Nop{}, nil
	}
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a, err := build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if a.consumer != nil {
		logger.Info("starting order event consumer", "broker", cfg.EventsBroker)
		go func() {
			if err := a.consumer.Consume(ctx, events.LogHandler(logger)); err != nil && ctx.Err() == nil {
				logger.Error("order event consumer stopped", "error", err)
			}
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.AppPort, "db", cfg.DBDriver)
		serveErr <- a.app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serveErr:
		a.close(context.Background(), logger)
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	a.close(shutdownCtx, logger)
	logger.Info("server gracefully stopped")
	return nil
}
