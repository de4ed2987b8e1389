package flatfile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Store keeps the phone book in a single text file. Every operation reads
// the file; every mutation rewrites it atomically. With an empty path the
// encoded contents live in memory for the lifetime of the handle.
type Store struct {
	mu     sync.Mutex
	path   string
	mem    []byte
	closed bool
	logger *slog.Logger
}

// Open returns a store backed by the file at path. The file need not exist;
// its parent directory is created if missing. An empty path opens an
// in-memory store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "flatfile")

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, types.Unavailable("open", path, fmt.Errorf("creating directory: %w", err))
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			return nil, types.Unavailable("open", path, errors.New("path is a directory"))
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, types.Unavailable("open", path, err)
		}
	}

	logger.Debug("flat file store opened", "path", path)
	return &Store{path: path, logger: logger}, nil
}

// Path returns the backing file path, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// ReadAll decodes every record. A missing file reads as an empty phone book.
func (s *Store) ReadAll() (types.PhoneBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load("read_all")
}

// ReadOne looks name up in the decoded file.
func (s *Store) ReadOne(name string) (types.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pb, err := s.load("read_one")
	if err != nil {
		return types.Entry{}, false, err
	}
	e, ok := pb[name]
	return e, ok, nil
}

// WriteOne upserts name and rewrites the file.
func (s *Store) WriteOne(name string, e types.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pb, err := s.load("write_one")
	if err != nil {
		return err
	}
	pb[name] = e
	return s.persist("write_one", pb)
}

// RemoveOne deletes name. The file is left untouched when name is absent.
func (s *Store) RemoveOne(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pb, err := s.load("remove_one")
	if err != nil {
		return err
	}
	if _, ok := pb[name]; !ok {
		return nil
	}
	delete(pb, name)
	return s.persist("remove_one", pb)
}

// WriteAll replaces the file with exactly pb.
func (s *Store) WriteAll(pb types.PhoneBook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.Unavailable("write_all", s.path, types.ErrStoreClosed)
	}
	return s.persist("write_all", pb)
}

// Close marks the handle closed. The file itself is not held open between
// operations, so there is nothing else to release.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.mem = nil
	s.logger.Debug("flat file store closed", "path", s.path)
	return nil
}

// load reads and decodes the backing contents. The caller must hold s.mu.
func (s *Store) load(op string) (types.PhoneBook, error) {
	if s.closed {
		return nil, types.Unavailable(op, s.path, types.ErrStoreClosed)
	}

	data := s.mem
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return make(types.PhoneBook), nil
		}
		if err != nil {
			return nil, types.IOFailure(op, s.path, err)
		}
	}

	pb, err := Decode(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, types.Malformed(op, s.path, pe.Line, errors.New(pe.Msg))
		}
		return nil, types.Malformed(op, s.path, 0, err)
	}
	return pb, nil
}

// persist encodes pb and replaces the backing contents. The caller must
// hold s.mu.
func (s *Store) persist(op string, pb types.PhoneBook) error {
	data := Encode(pb)
	if s.path == "" {
		s.mem = data
	} else if err := writeFileAtomic(s.path, data); err != nil {
		return types.IOFailure(op, s.path, err)
	}
	s.logger.Debug("phone book persisted", "op", op, "path", s.path, "entries", len(pb))
	return nil
}
