package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStorage(t *testing.T) (*FileStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.json")
	s, err := NewFileStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	return s, path
}

func report(id, date, technician string, hours float64) *internal.Report {
	return &internal.Report{
		ID:            id,
		Date:          date,
		Technician:    technician,
		Plant:         "PT",
		WorkOrder:     "OT-" + id,
		Description:   "Serviced unit " + id + " as scheduled",
		DurationHours: hours,
	}
}

func TestListReportsOrderedByDateDescending(t *testing.T) {
	s, _ := newTestFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, report("r1", "2024-06-01", "Carlos Cisneros", 1)))
	require.NoError(t, s.SaveReport(ctx, report("r2", "2024-06-03", "Carlos Cisneros", 2)))
	require.NoError(t, s.SaveReport(ctx, report("r3", "2024-06-02", "Carlos Cisneros", 0.5)))
	require.NoError(t, s.SaveReport(ctx, report("r4", "2024-06-03", "Carlos Cisneros", 1.5)))

	reports, err := s.ListReports(ctx, "Carlos Cisneros")
	require.NoError(t, err)
	require.Len(t, reports, 4)
	assert.Equal(t, "r2", reports[0].ID)
	assert.Equal(t, "r4", reports[1].ID, "same-date reports keep creation order")
	assert.Equal(t, "r3", reports[2].ID)
	assert.Equal(t, "r1", reports[3].ID)
}

func TestListReportsScopedByTechnician(t *testing.T) {
	s, _ := newTestFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, report("r1", "2024-06-01", "Carlos Cisneros", 1)))
	require.NoError(t, s.SaveReport(ctx, report("r2", "2024-06-01", "Kevin Vargas", 2)))

	reports, err := s.ListReports(ctx, "Kevin Vargas")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "r2", reports[0].ID)

	empty, err := s.ListReports(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateReport(t *testing.T) {
	s, _ := newTestFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, report("r1", "2024-06-01", "Carlos Cisneros", 1)))

	updated := report("r1", "2024-06-05", "Carlos Cisneros", 2.5)
	updated.Completed = true
	require.NoError(t, s.UpdateReport(ctx, updated))

	reports, err := s.ListReports(ctx, "Carlos Cisneros")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "2024-06-05", reports[0].Date)
	assert.Equal(t, 2.5, reports[0].DurationHours)
	assert.True(t, reports[0].Completed)

	assert.ErrorIs(t, s.UpdateReport(ctx, report("missing", "2024-06-01", "Carlos Cisneros", 1)), internal.ErrNotFound)
}

func TestDeleteReport(t *testing.T) {
	s, _ := newTestFileStorage(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, report("r1", "2024-06-01", "Carlos Cisneros", 1)))
	require.NoError(t, s.DeleteReport(ctx, "r1"))

	reports, err := s.ListReports(ctx, "Carlos Cisneros")
	require.NoError(t, err)
	assert.Empty(t, reports)

	assert.ErrorIs(t, s.DeleteReport(ctx, "r1"), internal.ErrNotFound)
}

func TestReportsSurviveReload(t *testing.T) {
	s, path := newTestFileStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveReport(ctx, report("r1", "2024-06-01", "Carlos Cisneros", 1)))
	require.NoError(t, s.SaveReport(ctx, report("r2", "2024-06-02", "Carlos Cisneros", 2)))
	require.NoError(t, s.Close()) // flushes pending writes

	reopened, err := NewFileStorage(path, internal.NewNopLogger())
	require.NoError(t, err)
	defer reopened.Close()

	reports, err := reopened.ListReports(ctx, "Carlos Cisneros")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
}
