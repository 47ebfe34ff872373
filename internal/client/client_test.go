package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackup struct {
	draft *internal.ReportDraft
	saves int
}

func (m *memBackup) SaveBackup(draft internal.ReportDraft) error {
	m.draft = &draft
	m.saves++
	return nil
}

func testDraft() internal.ReportDraft {
	return internal.ReportDraft{
		Date:        "2024-06-01",
		Technician:  "Carlos Cisneros",
		Plant:       "PT",
		WorkOrder:   "OT-450",
		Description: "Replaced the filter as requested",
		Hours:       1,
		Minutes:     30,
	}
}

func TestListReturnsOrderedReports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports", r.URL.Path)
		assert.Equal(t, "Carlos Cisneros", r.URL.Query().Get("technician"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]internal.Report{
			{ID: "r2", Date: "2024-06-02", DurationHours: 2},
			{ID: "r1", Date: "2024-06-01", DurationHours: 1.5},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil, internal.NewNopLogger())
	reports, err := c.List(context.Background(), "Carlos Cisneros")

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil, internal.NewNopLogger())
	reports, err := c.List(context.Background(), "Carlos Cisneros")

	require.NoError(t, err)
	assert.NotNil(t, reports)
	assert.Empty(t, reports)
}

func TestListServerErrorIsRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil, internal.NewNopLogger())
	_, err := c.List(context.Background(), "Carlos Cisneros")

	assert.ErrorIs(t, err, internal.ErrRemoteUnavailable)
}

func TestCreateReturnsStoredEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var record internal.Report
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&record))
		assert.Equal(t, 1.5, record.DurationHours, "duration encoded from the hours/minutes pair")
		record.ID = "assigned-1"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(record)
	}))
	defer srv.Close()

	c := client.New(srv.URL, &memBackup{}, internal.NewNopLogger())
	created, err := c.Create(context.Background(), testDraft())

	require.NoError(t, err)
	assert.Equal(t, "assigned-1", created.ID)
	assert.Equal(t, "2024-06-01", created.Date)
	assert.Equal(t, 1.5, created.DurationHours)
}

func TestCreateBuildsShadowWhenStoreEchoesOnlyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"assigned-2"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, &memBackup{}, internal.NewNopLogger())
	created, err := c.Create(context.Background(), testDraft())

	require.NoError(t, err)
	assert.Equal(t, "assigned-2", created.ID)
	assert.Equal(t, "2024-06-01", created.Date)
	assert.Equal(t, "OT-450", created.WorkOrder)
	assert.Equal(t, 1.5, created.DurationHours)
}

func TestCreateFailurePreservesDraftInBackup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	backup := &memBackup{}
	c := client.New(srv.URL, backup, internal.NewNopLogger())
	draft := testDraft()
	_, err := c.Create(context.Background(), draft)

	assert.ErrorIs(t, err, internal.ErrRemoteUnavailable)
	require.NotNil(t, backup.draft)
	assert.Equal(t, draft, *backup.draft)
}

func TestBackupSlotIsOverwrittenNotAppended(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	backup := &memBackup{}
	c := client.New(srv.URL, backup, internal.NewNopLogger())

	first := testDraft()
	second := testDraft()
	second.WorkOrder = "OT-451"

	_, _ = c.Create(context.Background(), first)
	_, _ = c.Create(context.Background(), second)

	assert.Equal(t, 2, backup.saves)
	assert.Equal(t, "OT-451", backup.draft.WorkOrder, "most recent failed draft wins")
}

func TestUpdateNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/reports/r9", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	backup := &memBackup{}
	c := client.New(srv.URL, backup, internal.NewNopLogger())
	err := c.Update(context.Background(), "r9", testDraft())

	assert.ErrorIs(t, err, internal.ErrNotFound)
	assert.NotNil(t, backup.draft, "failed update preserves the draft too")
}

func TestDeleteOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/reports/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := client.New(srv.URL, nil, internal.NewNopLogger())
	assert.NoError(t, c.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, c.Delete(context.Background(), "gone"), internal.ErrNotFound)
}

func TestSingleFlightGuardRejectsSecondSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var posts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&posts, 1)
		started <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"only-one"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, &memBackup{}, internal.NewNopLogger())

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Create(context.Background(), testDraft())
		errCh <- err
	}()

	<-started
	assert.True(t, c.Busy(), "caller can render a busy state while in flight")

	_, err := c.Create(context.Background(), testDraft())
	assert.ErrorIs(t, err, internal.ErrAlreadyInProgress, "second submission is rejected, not queued")

	close(release)
	assert.NoError(t, <-errCh)
	assert.EqualValues(t, 1, atomic.LoadInt32(&posts), "only one record reached the store")
	assert.False(t, c.Busy())
}
