package storage

import (
	"context"

	"github.com/MarlonMoe23/reportes/internal"
)

// ReportRepository is the server-side store behind the /reports API.
// ListReports returns reports ordered by date descending; within a date,
// creation order is preserved. UpdateReport and DeleteReport return
// internal.ErrNotFound for unknown ids.
type ReportRepository interface {
	SaveReport(ctx context.Context, r *internal.Report) error
	ListReports(ctx context.Context, technician string) ([]internal.Report, error)
	UpdateReport(ctx context.Context, r *internal.Report) error
	DeleteReport(ctx context.Context, id string) error
}
