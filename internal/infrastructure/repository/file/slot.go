// Package file persists the setup and match slots as JSON documents in a
// state directory so a restarted process can resume where it stopped.
package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// Slot stores one value of T in a single file. Writes go to a temp file that
// is renamed over the target.
type Slot[T any] struct {
	mu     sync.Mutex
	path   string
	write  func(io.Writer, T) error
	decode func([]byte) (T, error)
}

func NewSlot[T any](dir, name string, write func(io.Writer, T) error, decode func([]byte) (T, error)) (*Slot[T], error) {
	if dir == "" {
		return nil, crerr.New("state dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create state dir %q", dir)
	}
	return &Slot[T]{
		path:   filepath.Join(dir, name+".json"),
		write:  write,
		decode: decode,
	}, nil
}

func (s *Slot[T]) Path() string {
	return s.path
}

func (s *Slot[T]) Load(_ context.Context) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return zero, false, nil
		}
		return zero, false, crerr.Wrapf(err, "read slot %q", s.path)
	}
	if len(raw) == 0 {
		return zero, false, nil
	}

	value, err := s.decode(raw)
	if err != nil {
		return zero, false, crerr.Wrapf(err, "decode slot %q", s.path)
	}
	return value, true, nil
}

func (s *Slot[T]) Save(_ context.Context, value T) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := s.write(buf, value); err != nil {
		return crerr.Wrap(err, "encode slot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %q", s.path)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.B); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "write slot %q", s.path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "close slot %q", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return crerr.Wrapf(err, "replace slot %q", s.path)
	}
	return nil
}

func (s *Slot[T]) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return crerr.Wrapf(err, "remove slot %q", s.path)
	}
	return nil
}
