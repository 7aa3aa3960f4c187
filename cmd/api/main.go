package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/techchallenge/vehicle-api/internal/common/bootstrap"
	"github.com/techchallenge/vehicle-api/internal/common/config"
	"github.com/techchallenge/vehicle-api/internal/common/constants"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	srv "github.com/techchallenge/vehicle-api/internal/common/server"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), constants.DefaultApplicationName, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, log, cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), app.Handler())

	hooks := []srv.ShutdownHook{
		func(context.Context) error {
			log.Infof("closing database pool")
			app.Close()
			return nil
		},
	}

	if err := srv.Run(ctx, server, log, constants.ServiceName, hooks); err != nil {
		app.Close()
		log.Fatalf("%v", err)
	}
}
