// Package session holds the per-technician state that survives restarts:
// the sticky technician/plant selection, the equipment suggestion set, and
// the backup slot for the most recent failed draft. All of it is best-effort
// cache: safe to lose, empty on first run.
package session

import (
	"slices"
	"strings"
	"sync"

	"github.com/MarlonMoe23/reportes/internal"
)

const (
	keySelection   = "selection"
	keySuggestions = "equipment_suggestions"
	keyBackup      = "backup_draft"
)

// Store is the key-value persistence collaborator. Get reports whether the
// key was present.
type Store interface {
	Get(key string, v any) (bool, error)
	Set(key string, v any) error
	Delete(key string) error
}

// Selection is the sticky technician/plant pair prefilled into new drafts.
type Selection struct {
	Technician string `json:"technician"`
	Plant      string `json:"plant"`
}

type Session struct {
	store  Store
	logger internal.Logger

	mu          sync.Mutex
	selection   Selection
	suggestions []string
	backup      *internal.ReportDraft
}

// Load reads the persisted session state. Read failures are logged and start
// the session empty; they never block startup.
func Load(store Store, logger internal.Logger) *Session {
	s := &Session{store: store, logger: logger}

	if _, err := store.Get(keySelection, &s.selection); err != nil {
		logger.Warnf("session: failed to load selection: %v", err)
	}
	if _, err := store.Get(keySuggestions, &s.suggestions); err != nil {
		logger.Warnf("session: failed to load suggestions: %v", err)
	}
	var draft internal.ReportDraft
	ok, err := store.Get(keyBackup, &draft)
	if err != nil {
		logger.Warnf("session: failed to load backup draft: %v", err)
	} else if ok {
		s.backup = &draft
	}

	return s
}

func (s *Session) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

func (s *Session) SetSelection(sel Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sel == s.selection {
		return
	}
	s.selection = sel
	if err := s.store.Set(keySelection, sel); err != nil {
		s.logger.Warnf("session: failed to save selection: %v", err)
	}
}

// Suggestions returns a copy of the equipment suggestion set in insertion
// order.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.suggestions)
}

// AddSuggestion appends a work-order string to the suggestion set unless it
// is already present. The set is append-only and never validated.
func (s *Session) AddSuggestion(workOrder string) {
	workOrder = strings.TrimSpace(workOrder)
	if workOrder == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.suggestions, workOrder) {
		return
	}
	s.suggestions = append(s.suggestions, workOrder)
	if err := s.store.Set(keySuggestions, s.suggestions); err != nil {
		s.logger.Warnf("session: failed to save suggestions: %v", err)
	}
}

// SaveBackup stores the most recent failed draft. The slot holds exactly one
// draft; it is overwritten, never appended.
func (s *Session) SaveBackup(draft internal.ReportDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backup = &draft
	return s.store.Set(keyBackup, draft)
}

// Backup returns the stored draft, if any.
func (s *Session) Backup() (internal.ReportDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backup == nil {
		return internal.ReportDraft{}, false
	}
	return *s.backup, true
}

func (s *Session) ClearBackup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backup == nil {
		return
	}
	s.backup = nil
	if err := s.store.Delete(keyBackup); err != nil {
		s.logger.Warnf("session: failed to clear backup draft: %v", err)
	}
}
