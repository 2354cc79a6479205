package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-deskpilot/pkg/models"
)

// Entry is one persisted command run. Entries are append-only and immutable
// once written.
type Entry struct {
	ID      string                 `json:"id"`
	Time    time.Time              `json:"time"`
	Command string                 `json:"command"`
	Steps   []string               `json:"steps"`
	Actions []models.ActionReport  `json:"actions"`
	Summary models.FeedbackSummary `json:"summary"`
}

// Store is the write/read contract the pipeline depends on.
type Store interface {
	Append(entry Entry) error
	Latest() (Entry, bool)
}

// FileStore appends entries to a JSON-lines file and keeps the latest entry
// in memory for the summary endpoint.
type FileStore struct {
	mu     sync.Mutex
	path   string
	latest *Entry
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	s := &FileStore{path: path}
	if err := s.loadLatest(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}
	s.latest = &entry
	return nil
}

func (s *FileStore) Latest() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Entry{}, false
	}
	return *s.latest, true
}

func (s *FileStore) loadLatest() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var last []byte
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 {
			last = append(last[:0], line...)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan history file: %w", err)
	}
	if len(last) == 0 {
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(last, &entry); err != nil {
		// A torn trailing line is not fatal; history starts fresh.
		return nil
	}
	s.latest = &entry
	return nil
}

// MemStore is the in-memory Store used in tests.
type MemStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemStore) Latest() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *MemStore) All() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
