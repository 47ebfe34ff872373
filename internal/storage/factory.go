package storage

import (
	"fmt"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/config"
)

// NewRepository picks the backend from configuration.
func NewRepository(cfg *config.Config, logger internal.Logger) (ReportRepository, error) {
	switch cfg.DBType {
	case "file":
		return NewFileStorage(cfg.ReportsFile, logger)
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}
