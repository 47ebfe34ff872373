package api

import (
	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Reports() storage.ReportRepository
}

type app struct {
	logger  internal.Logger
	reports storage.ReportRepository
}

func NewApp(logger internal.Logger, reports storage.ReportRepository) App {
	return &app{logger: logger, reports: reports}
}

func (a *app) Logger() internal.Logger            { return a.logger }
func (a *app) Reports() storage.ReportRepository { return a.reports }
