package storage

import (
	"context"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) SaveReport(ctx context.Context, r *internal.Report) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO reports (id, date, technician, plant, work_order, description, duration_hours, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		r.ID, r.Date, r.Technician, r.Plant, r.WorkOrder, r.Description, r.DurationHours, r.Completed)
	if err != nil {
		p.logger.Errorf("failed to insert report: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListReports(ctx context.Context, technician string) ([]internal.Report, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, date, technician, plant, work_order, description, duration_hours, completed
		 FROM reports WHERE technician = $1 ORDER BY date DESC, created_at ASC`, technician)
	if err != nil {
		p.logger.Errorf("failed to query reports: %v", err)
		return nil, err
	}
	defer rows.Close()

	reports := []internal.Report{}
	for rows.Next() {
		var r internal.Report
		err := rows.Scan(&r.ID, &r.Date, &r.Technician, &r.Plant, &r.WorkOrder, &r.Description, &r.DurationHours, &r.Completed)
		if err != nil {
			p.logger.Errorf("failed to scan report: %v", err)
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func (p *PostgresStorage) UpdateReport(ctx context.Context, r *internal.Report) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE reports SET date = $2, technician = $3, plant = $4, work_order = $5, description = $6, duration_hours = $7, completed = $8
		 WHERE id = $1`,
		r.ID, r.Date, r.Technician, r.Plant, r.WorkOrder, r.Description, r.DurationHours, r.Completed)
	if err != nil {
		p.logger.Errorf("failed to update report: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) DeleteReport(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete report: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return internal.ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

var _ ReportRepository = (*PostgresStorage)(nil)
