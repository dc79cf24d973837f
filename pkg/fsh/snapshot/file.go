package snapshot

import (
	"context"
	"path/filepath"
	"time"

	fsh "github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

const defaultRetryInterval = 50 * time.Millisecond

// ErrLocked is returned when the state file lock could not be acquired
// before the context ended.
var ErrLocked = errors.New("snapshot state file is locked by another process")

// FileLock defines the interface for file locking operations
type FileLock interface {
	// TryLockContext attempts to acquire an exclusive lock with retries
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)

	// Unlock releases the lock
	Unlock() error
}

// FlockWrapper wraps github.com/gofrs/flock for our interface
type FlockWrapper struct {
	flock *flock.Flock
}

func NewFlock(path string) *FlockWrapper {
	return &FlockWrapper{flock: flock.New(path)}
}

func (f *FlockWrapper) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	return f.flock.TryLockContext(ctx, retryInterval)
}

func (f *FlockWrapper) Unlock() error {
	return f.flock.Unlock()
}

// File is a state file on some FileSystem plus the lock that serializes
// processes using it. The lock lives next to the state file as <path>.lock.
type File struct {
	fs   fsh.FileSystem
	path string
	lock FileLock
}

// FileOption configures a File.
type FileOption func(*File)

// WithLock replaces the flock based lock.
func WithLock(lock FileLock) FileOption {
	return func(f *File) {
		f.lock = lock
	}
}

// NewFile creates a File for the absolute path.
func NewFile(fileSystem fsh.FileSystem, path string, opts ...FileOption) *File {
	f := &File{fs: fileSystem, path: path}
	for _, opt := range opts {
		opt(f)
	}
	if f.lock == nil {
		f.lock = NewFlock(path + ".lock")
	}
	return f
}

func (f *File) Path() string {
	return f.path
}

// Lock blocks until the lock is held or ctx is done.
func (f *File) Lock(ctx context.Context) error {
	if _, err := f.fs.MkdirAll(filepath.Dir(f.path)); err != nil {
		return errors.Wrap(err, "failed to create state directory")
	}
	ok, err := f.lock.TryLockContext(ctx, defaultRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errors.Wrap(ErrLocked, err.Error())
		}
		return errors.Wrap(err, "failed to lock state file")
	}
	if !ok {
		return ErrLocked
	}
	return nil
}

func (f *File) Unlock() error {
	return f.lock.Unlock()
}

// Load reads the state file. A missing file yields an empty state for
// workDir.
func (f *File) Load(workDir string) (*State, error) {
	if !f.fs.Exists(f.path) {
		return NewState(workDir), nil
	}
	data, err := f.fs.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read state file %s", f.path)
	}
	state, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "state file %s", f.path)
	}
	return state, nil
}

func (f *File) Save(state *State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := f.fs.OutputFile(f.path, data); err != nil {
		return errors.Wrapf(err, "failed to write state file %s", f.path)
	}
	return nil
}

// Remove deletes the state file. A missing file is not an error.
func (f *File) Remove() error {
	if err := f.fs.RemoveAll(f.path); err != nil {
		return errors.Wrapf(err, "failed to remove state file %s", f.path)
	}
	return nil
}
