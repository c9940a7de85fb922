// Package main - Entry point for the gym-cost quote server
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gym-cost/api"
	"gym-cost/core/catalog"
	"gym-cost/core/pricing"
	"gym-cost/internal/config"
	"gym-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "Config file (.json, .yaml or .yml)")
	addr := flag.String("addr", "", "Server address (overrides config)")
	catalogPath := flag.String("catalog", "", "Catalog file (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if cfg.Logging.Level == logging.DefaultConfig().Level {
		cfg.Logging.Level = "info"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}

	cat, err := catalog.LoadOrDefault(cfg.Catalog.Path)
	if err != nil {
		logging.Error("failed to load catalog", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Gym membership quote server v%s\n", version)
	fmt.Printf("   API: http://localhost%s\n", cfg.Server.Addr)

	if err := api.NewServer(pricing.NewEngine(cat), version, nil).ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
