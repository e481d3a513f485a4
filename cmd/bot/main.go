package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jaegerconfig "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"

	"max.ks1230/finance-tracker/internal/clients/cache"
	"max.ks1230/finance-tracker/internal/clients/tg"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/finance"
	"max.ks1230/finance-tracker/internal/model/messages"
	"max.ks1230/finance-tracker/internal/model/reports"
	"max.ks1230/finance-tracker/internal/model/storage"
)

func main() {
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	initTracing(conf.App().ServiceName())

	store, err := storage.New(conf.Storage().Backend(), conf.Storage(), conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	manager := finance.NewManager(store)
	generator := reports.NewGenerator(store)

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init telegram client", zap.Error(err))
	}

	var msgService *messages.Service
	if len(conf.Memcached().Hosts()) > 0 {
		mc, err := cache.NewMemcache(conf.Memcached())
		if err != nil {
			logger.Fatal("failed to init memcached", zap.Error(err))
		}
		msgService = messages.NewService(client, manager, generator, mc)
	} else {
		msgService = messages.NewService(client, manager, generator, nil)
	}

	serveMetrics(conf.App().MetricsAddr())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	client.ListenUpdates(ctx, msgService)
}

func initTracing(serviceName string) {
	cfg := jaegerconfig.Configuration{
		Sampler: &jaegerconfig.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
	}
	_, err := cfg.InitGlobalTracer(serviceName)
	if err != nil {
		logger.Fatal("cannot init tracing", zap.Error(err))
	}
}

func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logger.Error("metrics server stopped", zap.Error(http.ListenAndServe(addr, nil)))
	}()
}
