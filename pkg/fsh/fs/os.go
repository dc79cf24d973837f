package fs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// OSFileSystem is the production implementation. Every call goes to the host
// filesystem through afero.
type OSFileSystem struct {
	fs      afero.Fs
	workDir string
}

// OSOption configures an OSFileSystem.
type OSOption func(*OSFileSystem)

// WithWorkDir pins the directory relative paths are resolved against instead
// of the process working directory.
func WithWorkDir(dir string) OSOption {
	return func(o *OSFileSystem) {
		o.workDir = dir
	}
}

func NewOSFileSystem(opts ...OSOption) *OSFileSystem {
	o := &OSFileSystem{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var _ FileSystem = (*OSFileSystem)(nil)

func (o *OSFileSystem) Getwd() (string, error) {
	if o.workDir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(o.workDir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve working directory %s", o.workDir)
	}
	return abs, nil
}

func (o *OSFileSystem) Exists(path string) bool {
	ok, err := afero.Exists(o.fs, path)
	return err == nil && ok
}

func (o *OSFileSystem) Lstat(path string) (fs.FileInfo, error) {
	if l, ok := o.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return o.fs.Stat(path)
}

func (o *OSFileSystem) Chmod(path string, mode fs.FileMode) error {
	return o.fs.Chmod(path, mode)
}

func (o *OSFileSystem) Rename(oldPath, newPath string) error {
	return o.fs.Rename(oldPath, newPath)
}

func (o *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(o.fs, path)
}

// CopyAll walks src and recreates it under dest. A failed copy removes
// whatever part of dest it already wrote.
func (o *OSFileSystem) CopyAll(src, dest string) error {
	if o.Exists(dest) {
		return &fs.PathError{Op: "copy", Path: dest, Err: ErrExist}
	}
	info, err := o.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "failed to stat copy source %s", src)
	}
	if isWithin(dest, src) {
		return &fs.PathError{Op: "copy", Path: dest, Err: ErrInvalid}
	}
	if !info.IsDir() {
		return o.copyFile(src, dest, info.Mode().Perm())
	}

	err = afero.Walk(o.fs, src, func(path string, fi fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, "failed to get relative path for %s", path)
		}
		target := filepath.Join(dest, rel)
		switch {
		case fi.IsDir():
			return o.fs.MkdirAll(target, fi.Mode().Perm())
		case fi.Mode().IsRegular():
			return o.copyFile(path, target, fi.Mode().Perm())
		default:
			return nil
		}
	})
	if err != nil {
		_ = o.fs.RemoveAll(dest)
		return errors.Wrapf(err, "failed to copy %s to %s", src, dest)
	}
	return nil
}

func (o *OSFileSystem) copyFile(src, dest string, perm fs.FileMode) error {
	data, err := afero.ReadFile(o.fs, src)
	if err != nil {
		return err
	}
	if err := o.fs.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return err
	}
	return afero.WriteFile(o.fs, dest, data, perm)
}

func (o *OSFileSystem) RemoveAll(path string) error {
	return o.fs.RemoveAll(path)
}

func (o *OSFileSystem) EnsureFile(path string) error {
	info, err := o.Lstat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		return nil
	case err == nil:
		return &fs.PathError{Op: "open", Path: path, Err: ErrIsDir}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	if err := o.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	f, err := o.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

// MkdirAll finds the outermost missing ancestor before creating anything, so
// callers know where to roll back from.
func (o *OSFileSystem) MkdirAll(path string) (string, error) {
	first := ""
	for dir := path; ; {
		if _, err := o.fs.Stat(dir); err == nil {
			break
		}
		first = dir
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if err := o.fs.MkdirAll(path, dirPerm); err != nil {
		return "", err
	}
	return first, nil
}

func (o *OSFileSystem) OutputFile(path string, data []byte) error {
	if err := o.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	return afero.WriteFile(o.fs, path, data, filePerm)
}
