package main

import (
	"os"
	"path/filepath"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/api"
	"github.com/MarlonMoe23/reportes/internal/config"
	"github.com/MarlonMoe23/reportes/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := internal.NewLogger(cfg.LogLevel)

	if cfg.DBType == "file" {
		if dir := filepath.Dir(cfg.ReportsFile); dir != "." {
			_ = os.MkdirAll(dir, 0755)
		}
	}

	repo, err := storage.NewRepository(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	if closer, ok := repo.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	router := api.NewRouter(api.NewApp(logger, repo))

	logger.Infof("report store listening on %s (backend=%s)", cfg.Addr, cfg.DBType)
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
