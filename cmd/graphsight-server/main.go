package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/graphsight/graphsight/pkg/api"
	"github.com/graphsight/graphsight/pkg/config"
	"github.com/graphsight/graphsight/pkg/logging"
	"github.com/graphsight/graphsight/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config, or set PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewDefaultLogger().Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}

	if *port == 0 {
		if envPort := os.Getenv("PORT"); envPort != "" {
			if p, err := strconv.Atoi(envPort); err == nil {
				*port = p
			}
		}
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Logging.Level))

	logger.Info("graphsight server starting",
		logging.String("addr", cfg.ListenAddr()),
		logging.String("log_level", cfg.Logging.Level))

	apiServer := api.NewServer(cfg, logger)

	gs := server.NewGracefulServer(cfg.ListenAddr(), apiServer.Handler(), server.Options{
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	if err := gs.Start(); err != nil {
		logger.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
}
