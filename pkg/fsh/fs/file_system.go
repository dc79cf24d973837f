// Package fs holds the primitive filesystem backends used by the helper facade:
// the OS-backed adapter and the in-memory mock that mirrors it.
package fs

import (
	"io/fs"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// FileSystem abstracts the primitive, synchronous filesystem calls the helpers
// are built on. Every path handed to it is absolute and cleaned.
type FileSystem interface {
	// Getwd returns the directory relative paths are resolved against.
	Getwd() (string, error)
	Exists(path string) bool
	Lstat(path string) (fs.FileInfo, error)
	Chmod(path string, mode fs.FileMode) error
	// Rename fails with an error matching fs.ErrNotExist when oldPath is absent.
	Rename(oldPath, newPath string) error
	ReadFile(path string) ([]byte, error)
	// CopyAll copies src recursively to dest. It never overwrites: an
	// existing dest is an error.
	CopyAll(src, dest string) error
	// RemoveAll removes path and everything below it. Removing a missing
	// path is not an error.
	RemoveAll(path string) error
	// EnsureFile creates an empty file (and its parents) unless a file is
	// already there. Existing content is left alone.
	EnsureFile(path string) error
	// MkdirAll creates path and any missing parents and returns the
	// outermost directory it created, or "" if everything already existed.
	MkdirAll(path string) (string, error)
	// OutputFile writes data to path, creating missing parents.
	OutputFile(path string, data []byte) error
}

// Seeder is implemented by backends that can import a file from the real disk
// before use.
type Seeder interface {
	SeedFile(path string) error
}
