package fs

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// MockFileSystem is an in-memory FileSystem over a flat Store. It mirrors the
// observable behavior of OSFileSystem so that code running on top of it cannot
// tell the two apart.
//
// The working directory and all of its ancestors always exist as directories,
// whether or not the store holds entries for them.
type MockFileSystem struct {
	store  *Store
	cwd    string
	source afero.Fs
}

// MockOption configures a MockFileSystem.
type MockOption func(*MockFileSystem)

// WithStore makes the mock operate on an existing store.
func WithStore(s *Store) MockOption {
	return func(m *MockFileSystem) {
		if s != nil {
			m.store = s
		}
	}
}

// WithSeedSource sets the filesystem SeedFile reads from. Defaults to the OS.
func WithSeedSource(src afero.Fs) MockOption {
	return func(m *MockFileSystem) {
		if src != nil {
			m.source = src
		}
	}
}

// NewMockFileSystem creates a mock whose working directory is cwd.
func NewMockFileSystem(cwd string, opts ...MockOption) *MockFileSystem {
	if abs, err := filepath.Abs(cwd); err == nil {
		cwd = abs
	}
	m := &MockFileSystem{
		store:  NewStore(),
		cwd:    filepath.Clean(cwd),
		source: afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	_ FileSystem = (*MockFileSystem)(nil)
	_ Seeder     = (*MockFileSystem)(nil)
)

// Store returns the backing store.
func (m *MockFileSystem) Store() *Store {
	return m.store
}

func (m *MockFileSystem) Getwd() (string, error) {
	return m.cwd, nil
}

// implicit reports whether path is the working directory or one of its ancestors.
func (m *MockFileSystem) implicit(path string) bool {
	return path == m.cwd || isWithin(m.cwd, path)
}

func (m *MockFileSystem) kind(path string) (Kind, bool) {
	if e, ok := m.store.Get(path); ok {
		return e.Kind, true
	}
	if m.implicit(path) {
		return KindDir, true
	}
	return 0, false
}

func (m *MockFileSystem) Exists(path string) bool {
	_, ok := m.kind(path)
	return ok
}

func (m *MockFileSystem) Lstat(path string) (fs.FileInfo, error) {
	name := filepath.Base(path)
	if e, ok := m.store.Get(path); ok {
		return newEntryInfo(name, e), nil
	}
	if m.implicit(path) {
		return newEntryInfo(name, newDirEntry()), nil
	}
	return nil, &fs.PathError{Op: "lstat", Path: path, Err: ErrNotExist}
}

// Chmod records mode on the entry. It has no effect on any other operation.
func (m *MockFileSystem) Chmod(path string, mode fs.FileMode) error {
	if e, ok := m.store.Get(path); ok {
		e.Mode = mode.Perm()
		return nil
	}
	if m.implicit(path) {
		return nil
	}
	return &fs.PathError{Op: "chmod", Path: path, Err: ErrNotExist}
}

// Rename moves oldPath and every entry below it to newPath, following
// rename(2): a directory may replace an empty directory, but not a non-empty
// one, a file, or its own descendant.
func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	src, ok := m.store.Get(oldPath)
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: ErrNotExist}
	}
	if oldPath == newPath {
		return nil
	}
	if isWithin(newPath, oldPath) {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: ErrInvalid}
	}

	parent := filepath.Dir(newPath)
	switch k, ok := m.kind(parent); {
	case !ok:
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: ErrNotExist}
	case k != KindDir:
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: ErrNotDir}
	}

	if dk, exists := m.kind(newPath); exists {
		var err error
		switch {
		case m.implicit(newPath):
			err = ErrNotEmpty
		case src.Kind == KindDir && dk != KindDir:
			err = ErrNotDir
		case src.Kind == KindFile && dk == KindDir:
			err = ErrIsDir
		case dk == KindDir && len(m.store.subtree(newPath)) > 1:
			err = ErrNotEmpty
		}
		if err != nil {
			return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
		}
		m.store.Delete(newPath)
	}

	moved := make(map[string]*Entry)
	for _, p := range m.store.subtree(oldPath) {
		e, _ := m.store.Get(p)
		moved[rebase(p, oldPath, newPath)] = e
		m.store.Delete(p)
	}
	for p, e := range moved {
		m.store.Set(p, e)
	}
	return nil
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	k, ok := m.kind(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrNotExist}
	}
	if k == KindDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: ErrIsDir}
	}
	e, _ := m.store.Get(path)
	return bytes.Clone(e.Content), nil
}

// CopyAll duplicates src and its descendants under dest. Nothing is written
// unless the whole copy can be made.
func (m *MockFileSystem) CopyAll(src, dest string) error {
	if m.Exists(dest) {
		return &fs.PathError{Op: "copy", Path: dest, Err: ErrExist}
	}
	if !m.Exists(src) {
		return &fs.PathError{Op: "copy", Path: src, Err: ErrNotExist}
	}
	if isWithin(dest, src) {
		return &fs.PathError{Op: "copy", Path: dest, Err: ErrInvalid}
	}
	missing, err := m.missingAncestors(dest)
	if err != nil {
		return err
	}

	for _, dir := range missing {
		m.store.Set(dir, newDirEntry())
	}
	if !m.store.Has(src) {
		// src is the working directory or an ancestor of it
		m.store.Set(dest, newDirEntry())
	}
	for _, p := range m.store.subtree(src) {
		e, _ := m.store.Get(p)
		m.store.Set(rebase(p, src, dest), e.Clone())
	}
	return nil
}

func (m *MockFileSystem) RemoveAll(path string) error {
	for _, p := range m.store.subtree(path) {
		m.store.Delete(p)
	}
	return nil
}

func (m *MockFileSystem) EnsureFile(path string) error {
	if k, ok := m.kind(path); ok {
		if k == KindFile {
			return nil
		}
		return &fs.PathError{Op: "open", Path: path, Err: ErrIsDir}
	}
	if err := m.createAncestors(path); err != nil {
		return err
	}
	m.store.Set(path, newFileEntry(nil, filePerm))
	return nil
}

func (m *MockFileSystem) MkdirAll(path string) (string, error) {
	if k, ok := m.kind(path); ok {
		if k != KindDir {
			return "", &fs.PathError{Op: "mkdir", Path: path, Err: ErrNotDir}
		}
		return "", nil
	}
	missing, err := m.missingAncestors(path)
	if err != nil {
		return "", err
	}
	missing = append(missing, path)
	for _, dir := range missing {
		m.store.Set(dir, newDirEntry())
	}
	return missing[0], nil
}

func (m *MockFileSystem) OutputFile(path string, data []byte) error {
	mode := filePerm
	if k, ok := m.kind(path); ok {
		if k == KindDir {
			return &fs.PathError{Op: "open", Path: path, Err: ErrIsDir}
		}
		e, _ := m.store.Get(path)
		mode = e.Mode
	}
	if err := m.createAncestors(path); err != nil {
		return err
	}
	m.store.Set(path, newFileEntry(data, mode))
	return nil
}

// SeedFile copies the file at path on the seed source into the store, creating
// its parent directories.
func (m *MockFileSystem) SeedFile(path string) error {
	info, err := m.source.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat seed file %s", path)
	}
	if info.IsDir() {
		return errors.Errorf("seed path %s is a directory", path)
	}
	data, err := afero.ReadFile(m.source, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read seed file %s", path)
	}
	if err := m.OutputFile(path, data); err != nil {
		return err
	}
	return m.Chmod(path, info.Mode())
}

// missingAncestors returns the ancestors of path that do not exist yet,
// outermost first. It fails if one of the existing ancestors is a file.
func (m *MockFileSystem) missingAncestors(path string) ([]string, error) {
	var missing []string
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if k, ok := m.kind(dir); ok {
			if k != KindDir {
				return nil, &fs.PathError{Op: "mkdir", Path: dir, Err: ErrNotDir}
			}
			break
		}
		missing = append(missing, dir)
		if filepath.Dir(dir) == dir {
			break
		}
	}
	slices.Reverse(missing)
	return missing, nil
}

func (m *MockFileSystem) createAncestors(path string) error {
	missing, err := m.missingAncestors(path)
	if err != nil {
		return err
	}
	for _, dir := range missing {
		m.store.Set(dir, newDirEntry())
	}
	return nil
}
