// Package profilefunctions собирает HTTP-сервис функций профиля:
// хранилище, кеш, очередь событий сверки, метрики и маршруты.
package profilefunctions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/profile-functions/internal/cache"
	"github.com/magabrotheeeer/profile-functions/internal/config"
	"github.com/magabrotheeeer/profile-functions/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-functions/internal/identityprovider"
	"github.com/magabrotheeeer/profile-functions/internal/lib/jwt"
	"github.com/magabrotheeeer/profile-functions/internal/lib/sl"
	"github.com/magabrotheeeer/profile-functions/internal/metrics"
	"github.com/magabrotheeeer/profile-functions/internal/migrations"
	"github.com/magabrotheeeer/profile-functions/internal/rabbitmq"
	profileservice "github.com/magabrotheeeer/profile-functions/internal/services/profile"
	signupservice "github.com/magabrotheeeer/profile-functions/internal/services/signup"
	"github.com/magabrotheeeer/profile-functions/internal/storage"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *storage.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
	events   *rabbitmq.Publisher
}

// New подключает зависимости и собирает роутер.
// Redis и RabbitMQ необязательны: при пустом адресе используются заглушки.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.profilefunctions.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app := &App{logger: logger, db: db}

	if cfg.MigrateOnStart {
		if err = migrations.Run(db.DB()); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("migrations applied")
	}

	var profileCache profileservice.Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		profileCache = app.cache
	} else {
		logger.Warn("redis address is empty, profile cache disabled")
	}

	var events profileservice.Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		app.amqpConn, err = rabbitmq.Connect(cfg.RabbitMQ.URL, 5, 2*time.Second)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(app.amqpConn, cfg.RabbitMQ.Exchange, rabbitmq.GetReconciliationQueues())
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.events = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		events = app.events
	} else {
		logger.Warn("rabbitmq url is empty, reconciliation events are only logged")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	profileService := profileservice.NewService(db, profileCache, events, m, logger, cfg.ProfileTTL)

	missing := cfg.MissingIdentityProvider()
	if len(missing) > 0 {
		logger.Warn("identity provider is not configured", slog.Any("missing", missing))
	}
	provider := identityprovider.NewClient(cfg.APIURL, cfg.SiteID, cfg.AdminAccessToken, cfg.IdentityProvider.Timeout)
	signupService := signupservice.NewService(provider, db, events, m, logger, missing)

	var parser middlewarectx.Parser
	if cfg.JWTSecretKey != "" {
		parser = jwt.NewParser(cfg.JWTSecretKey, time.Hour)
	} else {
		logger.Warn("identity token secret is empty, all requests are unauthenticated")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Parser:   parser,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		Profiles: profileService,
		Signup:   signupService,
		Store:    db,
		Registry: registry,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("failed to close amqp channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close amqp connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	a.db.Close()
}
