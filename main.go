package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/rdpstats/rdp-session-stats/api"
	"github.com/rdpstats/rdp-session-stats/collector"
	"github.com/rdpstats/rdp-session-stats/config"
	"github.com/rdpstats/rdp-session-stats/report"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	c := collector.New(cfg, logger.Named("collector"))
	h := api.NewHandler(c, report.NewBuilder(logger.Named("report")), logger.Named("api"))
	router := api.NewRouter(h)

	logger.Info("starting API server",
		zap.String("addr", cfg.ListenAddr),
		zap.Int("servers", len(cfg.Servers)))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
