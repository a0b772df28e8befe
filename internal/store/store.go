// Package store persists address books to the filesystem.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/contact"
)

// bookExt is the file extension of a saved book.
const bookExt = ".json"

// ErrInvalidName indicates a book name is empty or contains path traversal components.
var ErrInvalidName = errors.New("store: invalid book name")

// FileStore persists address books as JSON files under a base directory,
// one file per named book.
type FileStore struct {
	baseDir string
	logger  *zap.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for diagnostic output.
func WithLogger(l *zap.Logger) Option {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore creates a FileStore that saves books under baseDir.
func NewFileStore(baseDir string, opts ...Option) *FileStore {
	s := &FileStore{baseDir: baseDir}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Dir returns the base directory.
func (s *FileStore) Dir() string { return s.baseDir }

// Save writes the book to <baseDir>/<name>.json. The file is replaced
// atomically so readers never observe a partial write.
func (s *FileStore) Save(name string, book *contact.AddressBook) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.baseDir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("store: writing %s: %w", p, err)
	}

	s.logger.Debug("saved book", zap.String("path", p), zap.Int("records", book.Len()))
	return nil
}

// Load reads the named book.
// Returns (book, true, nil) if found, (empty book, false, nil) if not found.
func (s *FileStore) Load(name string) (*contact.AddressBook, bool, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("book not found, starting empty", zap.String("path", p))
			return contact.NewAddressBook(), false, nil
		}
		return nil, false, fmt.Errorf("store: reading %s: %w", p, err)
	}

	book := contact.NewAddressBook()
	if err := json.Unmarshal(data, book); err != nil {
		return nil, false, fmt.Errorf("store: parsing %s: %w", p, err)
	}

	s.logger.Debug("loaded book", zap.String("path", p), zap.Int("records", book.Len()))
	return book, true, nil
}

// Remove deletes the named book file.
func (s *FileStore) Remove(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: removing %s: %w", p, err)
	}
	return nil
}

// List returns the names of all saved books in sorted order.
// A missing base directory yields an empty list.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: listing %s: %w", s.baseDir, err)
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || filepath.Ext(n) != bookExt {
			continue
		}
		names = append(names, strings.TrimSuffix(n, bookExt))
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the filesystem path of the named book.
func (s *FileStore) Path(name string) (string, error) {
	return s.path(name)
}

// path returns the filesystem path for a book file.
// It rejects names that are empty, dot-segments, hidden, or contain path separators.
func (s *FileStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.baseDir, name+bookExt), nil
}
