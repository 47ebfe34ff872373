// Package client talks to the remote report store. It owns the single-flight
// guard over create/update and preserves failed drafts in the backup slot so
// no user input is lost.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/worktime"
	"github.com/go-resty/resty/v2"
)

// BackupStore receives the draft of a failed create/update. The slot holds
// one draft and is overwritten on each failure.
type BackupStore interface {
	SaveBackup(draft internal.ReportDraft) error
}

type Client struct {
	http   *resty.Client
	backup BackupStore
	logger internal.Logger

	// submitting is the single-flight guard: false (idle) -> true
	// (submitting) via CAS, so a second create/update is rejected instead of
	// queued. No automatic retries; every retry is user-initiated.
	submitting atomic.Bool
}

func New(baseURL string, backup BackupStore, logger internal.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		backup: backup,
		logger: logger,
	}
}

// Busy reports whether a create/update is in flight, so a caller can disable
// its submit affordance for the duration.
func (c *Client) Busy() bool {
	return c.submitting.Load()
}

// List fetches the technician's reports ordered by date descending. An empty
// result is a valid "no history yet" state, distinct from an error.
func (c *Client) List(ctx context.Context, technician string) ([]internal.Report, error) {
	var reports []internal.Report
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("technician", technician).
		SetResult(&reports).
		Get("/reports")
	if err != nil {
		c.logger.Errorf("list reports for %s: %v", technician, err)
		return nil, fmt.Errorf("list reports: %w", internal.ErrRemoteUnavailable)
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("list reports for %s: status %d", technician, resp.StatusCode())
		return nil, fmt.Errorf("list reports: status %d: %w", resp.StatusCode(), internal.ErrRemoteUnavailable)
	}
	if reports == nil {
		reports = []internal.Report{}
	}
	return reports, nil
}

// Create submits a new report. The duration is encoded from the draft's
// hours/minutes pair here, exactly once. Returns the stored record echo, or
// a locally built shadow when the store echoes only the assigned id.
func (c *Client) Create(ctx context.Context, draft internal.ReportDraft) (internal.Report, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return internal.Report{}, internal.ErrAlreadyInProgress
	}
	defer c.submitting.Store(false)

	record := recordFromDraft(draft)
	var created internal.Report
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(record).
		SetResult(&created).
		Post("/reports")
	if err != nil {
		c.stash(draft)
		c.logger.Errorf("create report: %v", err)
		return internal.Report{}, fmt.Errorf("create report: %w", internal.ErrRemoteUnavailable)
	}
	if resp.StatusCode() != http.StatusCreated {
		c.stash(draft)
		c.logger.Errorf("create report: status %d", resp.StatusCode())
		return internal.Report{}, fmt.Errorf("create report: status %d: %w", resp.StatusCode(), internal.ErrRemoteUnavailable)
	}

	if created.Date == "" {
		// store echoed only the id; reconstruct the record locally
		record.ID = created.ID
		created = record
	}
	return created, nil
}

// Update replaces the full remote record. A 404 maps to ErrNotFound so the
// caller knows its local view is stale.
func (c *Client) Update(ctx context.Context, id string, draft internal.ReportDraft) error {
	if !c.submitting.CompareAndSwap(false, true) {
		return internal.ErrAlreadyInProgress
	}
	defer c.submitting.Store(false)

	record := recordFromDraft(draft)
	record.ID = id
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(record).
		Put("/reports/{id}")
	if err != nil {
		c.stash(draft)
		c.logger.Errorf("update report %s: %v", id, err)
		return fmt.Errorf("update report: %w", internal.ErrRemoteUnavailable)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		c.stash(draft)
		return fmt.Errorf("update report %s: %w", id, internal.ErrNotFound)
	default:
		c.stash(draft)
		c.logger.Errorf("update report %s: status %d", id, resp.StatusCode())
		return fmt.Errorf("update report: status %d: %w", resp.StatusCode(), internal.ErrRemoteUnavailable)
	}
}

// Delete removes a report. Deleting an id that is already gone returns
// ErrNotFound, which callers treat as non-fatal.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/reports/{id}")
	if err != nil {
		c.logger.Errorf("delete report %s: %v", id, err)
		return fmt.Errorf("delete report: %w", internal.ErrRemoteUnavailable)
	}
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("delete report %s: %w", id, internal.ErrNotFound)
	default:
		c.logger.Errorf("delete report %s: status %d", id, resp.StatusCode())
		return fmt.Errorf("delete report: status %d: %w", resp.StatusCode(), internal.ErrRemoteUnavailable)
	}
}

func (c *Client) stash(draft internal.ReportDraft) {
	if c.backup == nil {
		return
	}
	if err := c.backup.SaveBackup(draft); err != nil {
		c.logger.Warnf("failed to back up draft: %v", err)
	}
}

func recordFromDraft(draft internal.ReportDraft) internal.Report {
	return internal.Report{
		Date:          draft.Date,
		Technician:    draft.Technician,
		Plant:         draft.Plant,
		WorkOrder:     draft.WorkOrder,
		Description:   draft.Description,
		DurationHours: worktime.Encode(draft.Hours, draft.Minutes),
		Completed:     draft.Completed,
	}
}
