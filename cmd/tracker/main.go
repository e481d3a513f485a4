package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"max.ks1230/finance-tracker/internal/clients/terminal"
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

	store, err := storage.New(conf.Storage().Backend(), conf.Storage(), conf.Postgres())
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	manager := finance.NewManager(store)
	generator := reports.NewGenerator(store)

	client := terminal.New()
	msgService := messages.NewService(client, manager, generator, nil)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = client.Run(ctx, msgService); err != nil {
		logger.Fatal("terminal loop failed", zap.Error(err))
	}
}
