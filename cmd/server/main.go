// @title          Explorer API
// @version        1.0
// @description    Gamified tourism backend: visits, missions, experience and place moderation.
// @BasePath       /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/placequest/explorer-api/internal/api"
	"github.com/placequest/explorer-api/internal/api/handler"
	"github.com/placequest/explorer-api/internal/core/service"
	"github.com/placequest/explorer-api/internal/infrastructure/config"
	mongodb "github.com/placequest/explorer-api/internal/infrastructure/db/mongo"
	redisdb "github.com/placequest/explorer-api/internal/infrastructure/db/redis"
	"github.com/placequest/explorer-api/internal/infrastructure/messaging"
	"github.com/placequest/explorer-api/internal/infrastructure/queue"
	"github.com/placequest/explorer-api/pkg/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	readinessTimeout = 2 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// The logger may not exist yet when config loading fails.
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "explorer-api",
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "explorer-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Activity pipeline ---
	var sink queue.Sink = messaging.NewLogSink(logger.Component("activity"))
	if cfg.AMQP.URL != "" {
		conn, err := messaging.Dial(cfg.AMQP.URL)
		if err != nil {
			return err
		}
		defer conn.Close()

		publisher, err := messaging.NewAMQPPublisher(conn, cfg.AMQP.Exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		sink = publisher
	} else {
		log.Warn().Msg("AMQP_URL not set, activity events will only be logged")
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, sink, logger.Component("dispatcher"))
	dispatcher.Start(dispatcherCtx)
	defer func() {
		stopDispatcher()
		dispatcher.Wait()
	}()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	places := mongodb.NewPlaceRepository(db)
	missions := mongodb.NewMissionRepository(db)
	requests := mongodb.NewPlaceRequestRepository(db)
	operators := mongodb.NewOperatorRepository(db)
	heatmap := mongodb.NewHeatmapRepository(db)
	heatmapCache := redisdb.NewHeatmapCache(rdb, cfg.Redis.HeatmapTTL)

	// --- Services ---
	svc := api.Services{
		Auth:       service.NewAuthService(users, operators, cfg.JWTSecret, cfg.UserTokenTTL, cfg.OperatorTokenTTL),
		Visits:     service.NewVisitService(users, places, missions, dispatcher, logger.Component("visits")),
		Users:      service.NewUserService(users, heatmap, heatmapCache, logger.Component("users")),
		Missions:   service.NewMissionService(missions, places, users, logger.Component("missions")),
		Places:     service.NewPlaceService(places),
		Moderation: service.NewModerationService(requests, places, users, dispatcher, logger.Component("moderation")),
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
		Readiness: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return redisdb.Ping(ctx, rdb, readinessTimeout) },
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server forced to shutdown")
	}
	return nil
}
