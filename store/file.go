// Package store persists wallet snapshots: a debounced writer, the local
// snapshot file and Cloud Storage backups.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/wallet"
	"github.com/rs/zerolog"
)

// Writer persists snapshot bytes.
type Writer interface {
	Write(ctx context.Context, data []byte) error
}

// File is the path of a local snapshot file.
type File string

// Write replaces the file content atomically.
func (f File) Write(ctx context.Context, data []byte) error {
	path := string(f)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %q: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %q: %w", path, err)
	}
	return nil
}

// Read returns the file content.
func (f File) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", string(f), err)
	}
	return data, nil
}

// Open loads the snapshot at path. A missing or unreadable snapshot yields
// the default state, the latter with a warning.
func Open(path string, log zerolog.Logger) *wallet.State {
	s, err := wallet.LoadFile(path)
	switch {
	case err == nil:
		log.Debug().Str("file", path).Int("transactions", len(s.Transactions)).Msg("wallet loaded")
		return s
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Str("file", path).Msg("no wallet file yet, starting empty")
	default:
		log.Warn().Err(err).Str("file", path).Msg("cannot load wallet, starting from the default state")
	}
	return wallet.DefaultState()
}
