// cmd/meal-plan/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcp-meal-plan/internal/config"
	"mcp-meal-plan/internal/logger"
	"mcp-meal-plan/internal/server"
)

var (
	transport   = flag.String("transport", "", "Transport mode: http or stdio (overrides MEAL_PLAN_TRANSPORT)")
	port        = flag.Int("port", 0, "Port for HTTP transport (overrides MEAL_PLAN_PORT)")
	host        = flag.String("host", "", "Host address (overrides MEAL_PLAN_HOST)")
	address     = flag.String("address", "", "Address (alias for host)")
	dbPath      = flag.String("db-path", "", "Database path (overrides MEAL_PLAN_DB_PATH)")
	catalogPath = flag.String("catalog", "", "YAML template catalog (overrides MEAL_PLAN_CATALOG_PATH)")
	envFile     = flag.String("env-file", ".env", "Optional .env file")
	version     = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("mcp-meal-plan version 1.0.0")
		os.Exit(0)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sampling := server.NewSamplingClient(cfg.GatewayURL, cfg.GatewayAPIKey, cfg.Model, cfg.GatewayTimeout)

	srv, err := server.NewMealPlanServer(&server.Config{
		Transport:   cfg.Transport,
		Host:        cfg.Host,
		Port:        cfg.Port,
		DBPath:      cfg.DBPath,
		CatalogPath: cfg.CatalogPath,
	}, sampling, log)
	if err != nil {
		log.Fatal("failed to create server", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			log.Error("server error", "error", err)
		} else {
			log.Info("transport closed")
		}
	}

	log.Info("shutting down")
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

// applyFlags lets explicit command-line flags win over the environment.
func applyFlags(cfg *config.Config) {
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *address != "" {
		cfg.Host = *address
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}
}
