package natrules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the rule list. Implementations keep file insertion order.
type Store interface {
	// Load returns all rules in insertion order. A missing store is
	// empty, not an error.
	Load() ([]Rule, error)

	// Append adds rules to the end of the store.
	Append(rules ...Rule) error

	// Delete removes every rule (any protocol) for the given public
	// port and returns the removed rules.
	Delete(publicPort int) ([]Rule, error)
}

// FileStore is the flat-file store. One rule per line, no header, no
// escaping. Writes are plain sequential file operations with no locking.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() ([]Rule, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rule store: %w", err)
	}

	var rules []Rule
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rule, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("rule store %s line %d: %w", s.path, i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *FileStore) Append(rules ...Rule) error {
	if len(rules) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return fmt.Errorf("open rule store: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, r := range rules {
		b.WriteString(r.Line())
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append to rule store: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(publicPort int) ([]Rule, error) {
	rules, err := s.Load()
	if err != nil {
		return nil, err
	}

	var kept, removed []Rule
	for _, r := range rules {
		if r.PublicPort == publicPort {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}

	var b strings.Builder
	for _, r := range kept {
		b.WriteString(r.Line())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0640); err != nil {
		return nil, fmt.Errorf("rewrite rule store: %w", err)
	}
	return removed, nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.Mutex
	rules []Rule

	// FailAppend, when set, is returned by Append without mutating.
	FailAppend error
}

func NewMemStore(rules ...Rule) *MemStore {
	return &MemStore{rules: rules}
}

func (s *MemStore) Load() ([]Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

func (s *MemStore) Append(rules ...Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend != nil {
		return s.FailAppend
	}
	s.rules = append(s.rules, rules...)
	return nil
}

func (s *MemStore) Delete(publicPort int) ([]Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept, removed []Rule
	for _, r := range s.rules {
		if r.PublicPort == publicPort {
			removed = append(removed, r)
		} else {
			kept = append(kept, r)
		}
	}
	s.rules = kept
	return removed, nil
}
