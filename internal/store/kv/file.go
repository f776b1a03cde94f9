package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// JSON-backed slots. One human-readable file per key, guarded by a sibling
// lock file so a CLI invocation and a running TUI never interleave writes.

const (
	slotExt           = ".json"
	lockExt           = ".lock"
	defaultLockWait   = 2 * time.Second
	lockRetryInterval = 20 * time.Millisecond
)

// FileStorage keeps each slot in <dir>/<key>.json.
type FileStorage struct {
	dir      string
	lockWait time.Duration
}

// NewFileStorage returns storage rooted at dir. The directory is created on first write.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir, lockWait: defaultLockWait}
}

// Path returns the file that holds key.
func (f *FileStorage) Path(key string) string {
	return filepath.Join(f.dir, key+slotExt)
}

func (f *FileStorage) GetItem(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	p := f.Path(key)
	if _, err := os.Stat(f.dir); errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}

	unlock, err := f.lock(p, false)
	if err != nil {
		return "", false, err
	}
	defer unlock()

	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return string(b), true, nil
}

func (f *FileStorage) SetItem(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	p := f.Path(key)

	unlock, err := f.lock(p, true)
	if err != nil {
		return err
	}
	defer unlock()

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("rename slot %q: %w", key, err)
	}
	return nil
}

func (f *FileStorage) lock(path string, exclusive bool) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.lockWait)
	defer cancel()

	fl := flock.New(path + lockExt)
	var (
		ok  bool
		err error
	)
	if exclusive {
		ok, err = fl.TryLockContext(ctx, lockRetryInterval)
	} else {
		ok, err = fl.TryRLockContext(ctx, lockRetryInterval)
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("lock %s: %w", filepath.Base(path), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, filepath.Base(path))
	}
	return func() { _ = fl.Unlock() }, nil
}
