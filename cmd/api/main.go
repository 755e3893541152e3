package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "offer-marketplace/internal/adapter/http"
	"offer-marketplace/internal/adapter/middleware"
	"offer-marketplace/internal/adapter/repository/mysql"
	"offer-marketplace/internal/auth"
	"offer-marketplace/internal/config"
	"offer-marketplace/internal/features"
	"offer-marketplace/internal/infrastructure/cache"
	"offer-marketplace/internal/infrastructure/db"
	"offer-marketplace/internal/infrastructure/logging"
	authUC "offer-marketplace/internal/usecase/auth"
	investmentUC "offer-marketplace/internal/usecase/investment"
	offerUC "offer-marketplace/internal/usecase/offer"
	userUC "offer-marketplace/internal/usecase/user"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	flags, err := features.Parse(cfg.FeatureFlags)
	if err != nil {
		log.WithError(err).Fatal("invalid FEATURE_FLAGS")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.DBLogLevel)
	if err != nil {
		log.WithError(err).Fatal("mysql unavailable")
	}
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("mysql handle")
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis unavailable")
	}
	defer rdb.Close()

	offers := mysql.NewOfferRepository(gdb)
	investments := mysql.NewInvestmentRepository(gdb)
	users := mysql.NewUserRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL(), auth.NewRedisRevocations(rdb), log)
	userService := userUC.NewUsecase(users)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := httpadp.NewServer(httpadp.Router{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Offers:            httpadp.NewOfferHandler(offerUC.NewUsecase(offers, tx, log), log),
		Investments:       httpadp.NewInvestmentHandler(investmentUC.NewUsecase(investments, offers, tx, log), log),
		Auth:              httpadp.NewAuthHandler(authUC.NewUsecase(users, tokens, log), userService, log),
		Users:             httpadp.NewUserHandler(userService, log),
		Tokens:            tokens,
		Redis:             rdb,
		IdempotencyTTL:    cfg.IdempotencyTTL(),
		Flags:             flags,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		Metrics:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		HTTPMetrics:       middleware.NewMetrics(reg),
		Log:               log,
	})

	addr := ":" + cfg.AppPort
	go func() {
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("bye")
}
