package service

import (
	"context"
	"errors"
	"time"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/session"
	"github.com/MarlonMoe23/reportes/internal/worktime"
)

// ReportStore is the remote-store surface the tracker drives. Implemented by
// the client package.
type ReportStore interface {
	List(ctx context.Context, technician string) ([]internal.Report, error)
	Create(ctx context.Context, draft internal.ReportDraft) (internal.Report, error)
	Update(ctx context.Context, id string, draft internal.ReportDraft) error
	Delete(ctx context.Context, id string) error
}

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusError      Status = "error"
)

// Tracker orchestrates the report lifecycle: it owns the in-memory report
// collection for the current technician, the current draft (new or editing
// an existing id), validation, submission, and the aggregated view. The
// remote store stays the system of record: the collection is only ever
// replaced wholesale by a fresh list after a confirmed mutation, never
// patched optimistically.
type Tracker struct {
	store     ReportStore
	sess      *session.Session
	validator *Validator
	logger    internal.Logger

	reports     []internal.Report
	draft       internal.ReportDraft
	editingID   string
	status      Status
	fieldErrors map[string]string
	lastErr     error
}

func NewTracker(store ReportStore, sess *session.Session, validator *Validator, logger internal.Logger) *Tracker {
	t := &Tracker{
		store:     store,
		sess:      sess,
		validator: validator,
		logger:    logger,
		status:    StatusIdle,
	}
	t.draft = t.newDraft()
	return t
}

// newDraft starts a fresh draft for today, prefilled with the sticky
// technician/plant selection.
func (t *Tracker) newDraft() internal.ReportDraft {
	sel := t.sess.Selection()
	return internal.ReportDraft{
		Date:       time.Now().Format("2006-01-02"),
		Technician: sel.Technician,
		Plant:      sel.Plant,
	}
}

func (t *Tracker) Draft() internal.ReportDraft              { return t.draft }
func (t *Tracker) SetDraft(draft internal.ReportDraft)      { t.draft = draft }
func (t *Tracker) Status() Status                           { return t.status }
func (t *Tracker) FieldErrors() map[string]string           { return t.fieldErrors }
func (t *Tracker) Err() error                               { return t.lastErr }
func (t *Tracker) Editing() (string, bool)                  { return t.editingID, t.editingID != "" }
func (t *Tracker) Suggestions() []string                    { return t.sess.Suggestions() }

// Reports returns a copy of the current collection.
func (t *Tracker) Reports() []internal.Report {
	out := make([]internal.Report, len(t.reports))
	copy(out, t.reports)
	return out
}

// Groups returns the date-grouped view of the current collection plus the
// grand total.
func (t *Tracker) Groups() ([]internal.DateGroup, float64) {
	return Aggregate(t.reports)
}

// Refresh replaces the collection with a fresh list for the draft's
// technician. With no technician selected there is nothing to list.
func (t *Tracker) Refresh(ctx context.Context) error {
	if t.draft.Technician == "" {
		t.reports = nil
		return nil
	}
	reports, err := t.store.List(ctx, t.draft.Technician)
	if err != nil {
		t.status = StatusError
		t.lastErr = err
		return err
	}
	t.reports = reports
	t.status = StatusIdle
	t.lastErr = nil
	return nil
}

// SetTechnician switches the active technician: the selection becomes
// sticky and the collection is replaced wholesale by a list scoped to the
// new technician. On a failed list the old technician's reports are dropped
// rather than shown against the new name.
func (t *Tracker) SetTechnician(ctx context.Context, technician string) error {
	t.draft.Technician = technician
	t.sess.SetSelection(session.Selection{Technician: technician, Plant: t.draft.Plant})
	t.reports = nil
	return t.Refresh(ctx)
}

// SetPlant updates the draft's plant and makes it sticky.
func (t *Tracker) SetPlant(plant string) {
	t.draft.Plant = plant
	t.sess.SetSelection(session.Selection{Technician: t.draft.Technician, Plant: plant})
}

// Submit validates the draft and creates or updates, depending on whether an
// existing report is being edited. On success the collection is re-listed,
// the draft resets keeping the sticky selection, and the work order joins
// the suggestion set. On failure the draft stays as entered (the client has
// already stashed it in the backup slot) and the error is surfaced.
func (t *Tracker) Submit(ctx context.Context) error {
	fieldErrs := t.validator.Validate(t.draft)
	if len(fieldErrs) > 0 {
		t.fieldErrors = fieldErrs
		return internal.ErrValidation
	}
	t.fieldErrors = nil
	if t.draft.Date == "" {
		t.draft.Date = time.Now().Format("2006-01-02")
	}

	t.status = StatusSubmitting
	var err error
	if t.editingID == "" {
		_, err = t.store.Create(ctx, t.draft)
	} else {
		err = t.store.Update(ctx, t.editingID, t.draft)
	}
	if errors.Is(err, internal.ErrAlreadyInProgress) {
		// another submission is still running; not a user-visible error
		return err
	}
	if err != nil {
		t.status = StatusError
		t.lastErr = err
		return err
	}

	t.sess.SetSelection(session.Selection{Technician: t.draft.Technician, Plant: t.draft.Plant})
	t.sess.AddSuggestion(t.draft.WorkOrder)
	t.sess.ClearBackup()
	t.editingID = ""
	t.draft = t.newDraft()
	t.status = StatusIdle
	t.lastErr = nil
	return t.Refresh(ctx)
}

// Edit loads an existing report into the draft, decoding its duration back
// into the hours/minutes pair. The id must be in the current collection.
func (t *Tracker) Edit(id string) error {
	for _, r := range t.reports {
		if r.ID != id {
			continue
		}
		t.draft = draftFromReport(r)
		t.editingID = id
		t.fieldErrors = nil
		return nil
	}
	return internal.ErrNotFound
}

// CancelEdit discards the draft deliberately: back to a fresh draft, no
// backup retained.
func (t *Tracker) CancelEdit() {
	t.editingID = ""
	t.draft = t.newDraft()
	t.fieldErrors = nil
	t.status = StatusIdle
	t.sess.ClearBackup()
}

// Delete removes a report and re-lists. A report that is already gone
// remotely is logged and treated as deleted.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	err := t.store.Delete(ctx, id)
	if err != nil && !errors.Is(err, internal.ErrNotFound) {
		t.status = StatusError
		t.lastErr = err
		return err
	}
	if errors.Is(err, internal.ErrNotFound) {
		t.logger.Warnf("report %s already gone remotely", id)
	}
	return t.Refresh(ctx)
}

// RestoreBackup loads the most recent failed draft, if one exists.
func (t *Tracker) RestoreBackup() bool {
	draft, ok := t.sess.Backup()
	if !ok {
		return false
	}
	t.draft = draft
	return true
}

// ComposedMessage renders the current aggregated view as a shareable text
// block with optional free-text notes appended.
func (t *Tracker) ComposedMessage(notes string) string {
	groups, total := t.Groups()
	return ComposeMessage(groups, total, notes)
}

func draftFromReport(r internal.Report) internal.ReportDraft {
	hours, minutes := worktime.Decode(r.DurationHours)
	return internal.ReportDraft{
		Date:        r.Date,
		Technician:  r.Technician,
		Plant:       r.Plant,
		WorkOrder:   r.WorkOrder,
		Description: r.Description,
		Hours:       hours,
		Minutes:     minutes,
		Completed:   r.Completed,
	}
}
