package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/TalentTrack/internal/common"
)

// Entry is one archived analysis result
type Entry struct {
	ID        string          `json:"id"`
	Category  common.Category `json:"category"`
	RecordID  string          `json:"record_id"`
	Headline  string          `json:"headline"`
	CreatedAt time.Time       `json:"created_at"`
	Record    json.RawMessage `json:"record,omitempty"`
}

// EntryFor archives a fulfilled record
func EntryFor(rec common.Record) (Entry, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal record: %w", err)
	}

	return Entry{
		ID:        uuid.NewString(),
		Category:  rec.Kind(),
		RecordID:  rec.RecordID(),
		Headline:  rec.Headline(),
		CreatedAt: time.Now().UTC(),
		Record:    payload,
	}, nil
}

// FilterOptions narrows List results
type FilterOptions struct {
	Category common.Category // empty matches all categories
	Search   string          // case-insensitive headline substring
	Limit    int             // keep the most recent N when > 0
}

// Store is an append-only line-delimited JSON archive of past results
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens (or prepares) the history file at path
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	return &Store{path: path}, nil
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Append adds one entry to the archive
func (s *Store) Append(entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("entry ID cannot be empty")
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}

	return nil
}

// List returns entries in chronological order, filtered. Malformed
// lines are skipped so one bad write never poisons the archive.
func (s *Store) List(filter *FilterOptions) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		if !matches(entry, filter) {
			continue
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	if filter != nil && filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[len(entries)-filter.Limit:]
	}

	return entries, nil
}

// Counts returns how many archived entries each category holds
func (s *Store) Counts() (map[common.Category]int, error) {
	entries, err := s.List(nil)
	if err != nil {
		return nil, err
	}

	counts := make(map[common.Category]int)
	for _, entry := range entries {
		counts[entry.Category]++
	}
	return counts, nil
}

// Clear removes the archive file
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func matches(entry Entry, filter *FilterOptions) bool {
	if filter == nil {
		return true
	}

	if filter.Category != "" && entry.Category != filter.Category {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(entry.Headline), needle) {
			return false
		}
	}

	return true
}
