package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hotel_registry/internal/adapters/http_server"
	"hotel_registry/internal/adapters/observability"
	redisad "hotel_registry/internal/adapters/redis"
	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/shared"
	"hotel_registry/internal/storage/jsonfile"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// cache is optional: no REDIS_ADDR or an unreachable redis means the
	// managers run straight off the JSON files
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, running without cache")
		} else {
			cache = rc
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
		}
	}

	hotels := app.NewHotelService(jsonfile.New[domain.Hotel](cfg.DataDir, "hotels", log.Logger), cache, cfg.CacheTTL)
	customers := app.NewCustomerService(jsonfile.New[domain.Customer](cfg.DataDir, "customers", log.Logger), cache, cfg.CacheTTL)
	reservations := app.NewReservationService(jsonfile.New[domain.Reservation](cfg.DataDir, "reservations", log.Logger), hotels, customers, cache, cfg.CacheTTL)
	customers.BindReservationIndex(reservations)

	srv := server.New(cfg.RateRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Hotels: hotels, Customers: customers, Reservations: reservations})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("data_dir", cfg.DataDir).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.MetricsAddr != "" {
		metricsSrv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           observability.MetricsHandler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(shutCtx)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
