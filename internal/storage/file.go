package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/MarlonMoe23/reportes/internal"
)

// FileStorage keeps all reports in memory with a per-technician index sorted
// by date descending, and persists them to one JSON file through a debounced
// background worker.
type FileStorage struct {
	reports   map[string]*internal.Report   // id -> report
	techIndex map[string][]*internal.Report // technician -> reports, date desc
	mu        sync.RWMutex

	reportsFile string
	saveChan    chan struct{}
	shutdown    chan struct{}
	saveDelay   time.Duration
	logger      internal.Logger
}

func NewFileStorage(reportsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		reports:     make(map[string]*internal.Report),
		techIndex:   make(map[string][]*internal.Report),
		reportsFile: reportsFile,
		saveChan:    make(chan struct{}, 1),
		shutdown:    make(chan struct{}),
		saveDelay:   500 * time.Millisecond,
		logger:      logger,
	}

	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load reports: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) load() error {
	file, err := os.Open(s.reportsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var reports []*internal.Report
	if err := json.NewDecoder(file).Decode(&reports); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range reports {
		s.reports[r.ID] = r
		s.insertIndexed(r)
	}
	return nil
}

// insertIndexed places r into its technician's index keeping dates
// descending. For equal dates the report goes after existing ones so
// creation order survives a reload. Callers hold s.mu.
func (s *FileStorage) insertIndexed(r *internal.Report) {
	list := s.techIndex[r.Technician]
	pos := len(list)
	for i, existing := range list {
		if existing.Date < r.Date {
			pos = i
			break
		}
	}
	list = append(list[:pos], append([]*internal.Report{r}, list[pos:]...)...)
	s.techIndex[r.Technician] = list
}

func (s *FileStorage) removeIndexed(r *internal.Report) {
	list := s.techIndex[r.Technician]
	for i, existing := range list {
		if existing.ID == r.ID {
			s.techIndex[r.Technician] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (s *FileStorage) SaveReport(ctx context.Context, r *internal.Report) error {
	s.mu.Lock()
	s.reports[r.ID] = r
	s.insertIndexed(r)
	s.mu.Unlock()

	s.signalSave()
	return nil
}

func (s *FileStorage) ListReports(ctx context.Context, technician string) ([]internal.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list, ok := s.techIndex[technician]
	if !ok {
		return []internal.Report{}, nil
	}

	reports := make([]internal.Report, len(list))
	for i, r := range list {
		reports[i] = *r
	}
	return reports, nil
}

func (s *FileStorage) UpdateReport(ctx context.Context, r *internal.Report) error {
	s.mu.Lock()
	existing, ok := s.reports[r.ID]
	if !ok {
		s.mu.Unlock()
		return internal.ErrNotFound
	}
	// full-record replace; re-index in case the date or technician moved
	s.removeIndexed(existing)
	s.reports[r.ID] = r
	s.insertIndexed(r)
	s.mu.Unlock()

	s.signalSave()
	return nil
}

func (s *FileStorage) DeleteReport(ctx context.Context, id string) error {
	s.mu.Lock()
	existing, ok := s.reports[id]
	if !ok {
		s.mu.Unlock()
		return internal.ErrNotFound
	}
	s.removeIndexed(existing)
	delete(s.reports, id)
	s.mu.Unlock()

	s.signalSave()
	return nil
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) save() error {
	s.mu.RLock()
	reports := make([]*internal.Report, 0, len(s.reports))
	for _, list := range s.techIndex {
		reports = append(reports, list...)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.reportsFile, reports)
}

// saveWorker batches save operations to avoid a disk write per mutation.
func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving reports: %v", err)
			}
		case <-s.shutdown:
			return
		}
	}
}

// Close stops the save worker and flushes pending data.
func (s *FileStorage) Close() error {
	close(s.shutdown)
	return s.save()
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}
	return os.Rename(tempFile, filePath)
}

var _ ReportRepository = (*FileStorage)(nil)
