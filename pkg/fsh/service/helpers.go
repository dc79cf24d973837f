package service

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/ux"
	"github.com/pkg/errors"
)

var allowedPath = regexp.MustCompile(`^[.a-zA-Z0-9\-_/:\\]+$`)

// Helpers exposes the filesystem operations. Every operation reports through a
// domain.Result and logs a diagnostic when it fails; none of them panic or
// return bare errors.
type Helpers struct {
	deps *Deps
}

// Option customizes helper construction
type Option func(*options)

type options struct {
	seedFiles []string
}

// WithSeedFiles copies the given real files into backends that support
// seeding (the mock) before the helpers are used.
func WithSeedFiles(paths ...string) Option {
	return func(o *options) { o.seedFiles = append(o.seedFiles, paths...) }
}

// NewHelpers creates the helpers on top of deps.FS
func NewHelpers(deps *Deps, opts ...Option) *Helpers {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &Helpers{deps: deps}
	h.seed(o.seedFiles)
	return h
}

func (h *Helpers) seed(paths []string) {
	seeder, ok := h.deps.FS.(fs.Seeder)
	if !ok {
		return
	}
	for _, p := range paths {
		res := h.ResolvePath(p)
		if !res.Success() {
			continue
		}
		if err := seeder.SeedFile(res.Value()); err != nil {
			h.deps.Logger.Warn("Failed to seed file", ux.Field("path", p), ux.Field("error", err))
		}
	}
}

// ResolvePath validates path against the allowed character set and returns it
// absolute and cleaned, relative paths being taken from the backend's working
// directory.
func (h *Helpers) ResolvePath(path string) domain.Result[string] {
	abs, err := h.resolve(path)
	if err != nil {
		h.deps.Logger.Error("Error resolving path", ux.Field("path", path), ux.Field("error", err))
		return domain.Fail[string](domain.NewError(
			domain.KindInvalidPath,
			fmt.Sprintf("Error resolving path: '%s'. Received error: '%s'", path, err),
			err,
		))
	}
	return domain.Ok(abs)
}

func (h *Helpers) resolve(path string) (string, error) {
	if path == "" {
		return "", errors.New("path is empty")
	}
	if !allowedPath.MatchString(path) {
		return "", errors.Errorf("path contains unsupported characters. Received %s.", path)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	cwd, err := h.deps.FS.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	return filepath.Join(cwd, path), nil
}

// FileExists succeeds with false when nothing is at path and fails when
// something other than a regular file is.
func (h *Helpers) FileExists(path string) domain.Result[bool] {
	res := h.ResolvePath(path)
	if !res.Success() {
		return domain.Propagate[bool](res)
	}
	abs := res.Value()

	if !h.deps.FS.Exists(abs) {
		return domain.Ok(false)
	}
	info, err := h.deps.FS.Lstat(abs)
	if err != nil || !info.Mode().IsRegular() {
		h.deps.Logger.Debug("Path is not a file", ux.Field("path", path))
		return domain.Fail[bool](domain.NewError(
			domain.KindNotAFile,
			fmt.Sprintf("checkIfFileExists: '%s' is not a file.", path),
			err,
		))
	}
	return domain.Ok(true)
}

// DirExists succeeds with false when nothing is at path and fails when
// something other than a directory is. The working directory always exists.
func (h *Helpers) DirExists(path string) domain.Result[bool] {
	res := h.ResolvePath(path)
	if !res.Success() {
		return domain.Propagate[bool](res)
	}
	abs := res.Value()

	if !h.deps.FS.Exists(abs) {
		return domain.Ok(false)
	}
	info, err := h.deps.FS.Lstat(abs)
	if err != nil || !info.IsDir() {
		h.deps.Logger.Debug("Path is not a directory", ux.Field("path", path))
		return domain.Fail[bool](domain.NewError(
			domain.KindNotADirectory,
			fmt.Sprintf("checkIfDirExists: '%s' is not a directory.", path),
			err,
		))
	}
	return domain.Ok(true)
}
