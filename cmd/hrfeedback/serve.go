package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hrdesk/feedback-api/internal/api"
	"github.com/hrdesk/feedback-api/internal/api/handler"
	"github.com/hrdesk/feedback-api/internal/core/ports"
	"github.com/hrdesk/feedback-api/internal/core/service"
	mongodb "github.com/hrdesk/feedback-api/internal/infrastructure/db/mongo"
	redisdb "github.com/hrdesk/feedback-api/internal/infrastructure/db/redis"
	"github.com/hrdesk/feedback-api/internal/infrastructure/notify"
	"github.com/hrdesk/feedback-api/internal/infrastructure/queue"
	"github.com/hrdesk/feedback-api/internal/pkg/config"
	"github.com/hrdesk/feedback-api/internal/pkg/password"
	"github.com/hrdesk/feedback-api/pkg/logger"
)

const serviceName = "hrfeedback"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the notification workers.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

type closingNotifier interface {
	ports.Notifier
	Close() error
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Pretty(),
		Service: serviceName,
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	admins := mongodb.NewAdminRepository(db)
	employees := mongodb.NewEmployeeRepository(db)
	companies := mongodb.NewCompanyRepository(db)
	feedback := mongodb.NewFeedbackRepository(db)
	properties := mongodb.NewPropertyRepository(db)
	bookmarks := mongodb.NewBookmarkRepository(db)
	revocations := redisdb.NewRevocationStore(rdb)

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, revocations)
	if err != nil {
		return err
	}
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	notifier := newNotifier(cfg, logger.Component("notify"))
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Warn().Err(err).Msg("notifier close failed")
		}
	}()
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notifier, logger.Component("dispatcher"))

	// --- Services ---
	propertyService := service.NewPropertyService(properties, employees, logger.Component("properties"))
	deps := api.Dependencies{
		Auth:          service.NewAuthService(admins, employees, hasher, tokens, revocations, logger.Component("auth")),
		Employees:     service.NewEmployeeService(employees, admins, companies, hasher, dispatcher, logger.Component("employees")),
		Companies:     service.NewCompanyService(companies, logger.Component("companies")),
		Feedback:      service.NewFeedbackService(feedback, admins, employees, dispatcher, logger.Component("feedback")),
		Properties:    propertyService,
		Bookmarks:     service.NewBookmarkService(bookmarks, propertyService, logger.Component("bookmarks")),
		Verifier:      tokens,
		AllowLegacyID: cfg.Auth.LegacyIDTokens,
		HealthChecks: map[string]handler.DependencyCheck{
			"mongodb": mongodb.Ping(db),
			"redis":   redisdb.Ping(rdb),
		},
		AllowedOrigins: cfg.AllowedOrigins,
		Registerer:     prometheus.DefaultRegisterer,
		Logger:         logger.Component("http"),
	}
	e := api.NewRouter(deps)

	// The dispatcher outlives the HTTP server so requests finishing during
	// shutdown can still queue notifications.
	dispatchCtx, stopDispatch := context.WithCancel(context.Background())
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(dispatchCtx)
	})
	g.Go(func() error {
		addr := net.JoinHostPort("", cfg.Port)
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		defer stopDispatch()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down")
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("stopped")
	return nil
}

func newNotifier(cfg *config.Config, log zerolog.Logger) closingNotifier {
	if len(cfg.Notify.KafkaBrokers) == 0 {
		log.Info().Msg("no kafka brokers configured, notifications are logged")
		return notify.NewLogNotifier(log)
	}
	log.Info().
		Strs("brokers", cfg.Notify.KafkaBrokers).
		Str("topic", cfg.Notify.KafkaTopic).
		Msg("publishing notifications to kafka")
	return notify.NewKafkaNotifier(notify.KafkaConfig{
		Brokers: cfg.Notify.KafkaBrokers,
		Topic:   cfg.Notify.KafkaTopic,
	})
}
