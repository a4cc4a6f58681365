package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cacheadapter "github.com/smallbiznis/valora-web/internal/adapter/cache"
	"github.com/smallbiznis/valora-web/internal/client"
	"github.com/smallbiznis/valora-web/internal/config"
	httptransport "github.com/smallbiznis/valora-web/internal/http"
	"github.com/smallbiznis/valora-web/internal/http/handler"
	apimiddleware "github.com/smallbiznis/valora-web/internal/middleware"
	"github.com/smallbiznis/valora-web/internal/server"
	"github.com/smallbiznis/valora-web/internal/service"
	"github.com/smallbiznis/valora-web/internal/session"
	"github.com/smallbiznis/valora-web/internal/telemetry"
	"github.com/smallbiznis/valora-web/internal/token"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newTokenCodec,
			newSessionIssuer,
			newAccountClient,
			newCompanyClient,
			newRedisClient,
			newThrottleStore,
			newRateLimiter,
			service.NewResetService,
			handler.NewResetHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newTokenCodec(cfg config.Config) *token.Codec {
	return token.NewCodec(cfg.SigningSecret)
}

func newSessionIssuer(cfg config.Config) *session.Issuer {
	return session.NewIssuer(cfg.SigningSecret, cfg.ExternalApex, cfg.ShortSessionTTL)
}

func newAccountClient(cfg config.Config) client.AccountClient {
	return client.NewHTTPAccountClient(cfg.AccountServiceURL, cfg.InternalAPIKey, nil)
}

func newCompanyClient(cfg config.Config) client.CompanyClient {
	return client.NewHTTPCompanyClient(cfg.CompanyServiceURL, cfg.InternalAPIKey, nil)
}

func newRedisClient(lc fx.Lifecycle, cfg config.Config) (redis.UniversalClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return rdb, nil
}

func newThrottleStore(rdb redis.UniversalClient) cacheadapter.ThrottleStore {
	return cacheadapter.NewRedisThrottleStore(rdb)
}

func newRateLimiter(cfg config.Config) *apimiddleware.RateLimiter {
	return apimiddleware.NewRateLimiter(cfg.RateLimitRPM)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
