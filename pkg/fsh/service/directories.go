package service

import (
	"fmt"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/ux"
)

const (
	// RenamedMessage is the value of a successful RenameDir.
	RenamedMessage = "Successfully renamed the directory."
	// NothingToCleanUpMessage is logged and returned when AbortDirCreation has
	// no directory to remove.
	NothingToCleanUpMessage = "Cleaning up due to abort, no directory to clean up."
)

// CreateDir creates path and any missing parents. The value is the outermost
// directory that did not exist before the call, which is where
// AbortDirCreation should start; it is "" when nothing had to be created.
func (h *Helpers) CreateDir(path string) domain.Result[string] {
	if path == "" {
		return h.createDirFailed(path, nil)
	}
	res := h.ResolvePath(path)
	if !res.Success() {
		return res
	}

	first, err := h.deps.FS.MkdirAll(res.Value())
	if err != nil {
		return h.createDirFailed(path, err)
	}
	return domain.Ok(first)
}

func (h *Helpers) createDirFailed(path string, cause error) domain.Result[string] {
	h.deps.Logger.Error("Error creating dir", ux.Field("path", path), ux.Field("code", fs.Code(cause)))
	return domain.Fail[string](domain.NewError(
		domain.KindCreateDir,
		fmt.Sprintf("Error creating dir: '%s'", path),
		cause,
	))
}

// RemoveDirRecursive removes the directory at path and everything below it.
// Paths that are not existing directories are refused. The value is path as
// given.
func (h *Helpers) RemoveDirRecursive(path string) domain.Result[string] {
	res := h.ResolvePath(path)
	if !res.Success() {
		return res
	}
	abs := res.Value()

	if exists := h.DirExists(abs); !exists.Success() || !exists.Value() {
		return h.deleteDirFailed(path, exists.Err())
	}
	if err := h.deps.FS.RemoveAll(abs); err != nil {
		return h.deleteDirFailed(path, err)
	}
	return domain.Ok(path)
}

func (h *Helpers) deleteDirFailed(path string, cause error) domain.Result[string] {
	h.deps.Logger.Error("Error deleting dir", ux.Field("path", path))
	return domain.Fail[string](domain.NewError(
		domain.KindDeleteDir,
		fmt.Sprintf("Error deleting dir: '%s'", path),
		cause,
	))
}

// RemoveDirsRecursive resolves and removes each path independently. One result
// per input is returned, in input order; a failure does not stop the others.
func (h *Helpers) RemoveDirsRecursive(paths []string) []domain.Result[string] {
	results := make([]domain.Result[string], 0, len(paths))
	for _, p := range paths {
		res := h.ResolvePath(p)
		if !res.Success() {
			results = append(results, res)
			continue
		}
		results = append(results, h.RemoveDirRecursive(res.Value()))
	}
	return results
}

// RenameDir moves oldPath, and everything below it, to newPath.
func (h *Helpers) RenameDir(oldPath, newPath string) domain.Result[string] {
	src := h.ResolvePath(oldPath)
	if !src.Success() {
		return src
	}
	dest := h.ResolvePath(newPath)
	if !dest.Success() {
		return dest
	}

	if err := h.deps.FS.Rename(src.Value(), dest.Value()); err != nil {
		h.deps.Logger.Error("Error renaming dir",
			ux.Field("code", fs.Code(err)),
			ux.Field("from", oldPath),
			ux.Field("to", newPath),
			ux.Field("error", err),
		)
		return domain.Fail[string](domain.NewError(
			domain.KindRename,
			fmt.Sprintf("renameDir from '%s' to '%s' failed.", oldPath, newPath),
			err,
		))
	}
	return domain.Ok(RenamedMessage)
}

// AbortDirCreation removes the directory tree a failed provisioning sequence
// left behind. path is the value returned by CreateDir; "" or a path that is
// not an existing directory leaves everything untouched and fails.
func (h *Helpers) AbortDirCreation(path string) domain.Result[domain.Void] {
	if path != "" {
		if exists := h.DirExists(path); exists.Success() && exists.Value() {
			h.deps.Logger.Warn("Cleaning up due to abort, directories created starting at path", ux.Field("path", path))
			if res := h.RemoveDirRecursive(path); !res.Success() {
				return domain.Propagate[domain.Void](res)
			}
			return domain.Ok(domain.Void{})
		}
	}

	h.deps.Logger.Warn(NothingToCleanUpMessage)
	return domain.Fail[domain.Void](domain.NewError(domain.KindCleanupNothingToDo, NothingToCleanUpMessage, nil))
}

// CopyDirAbsolute copies src recursively to dest. dest must not exist; when it
// does nothing is copied.
func (h *Helpers) CopyDirAbsolute(src, dest string) domain.Result[domain.Void] {
	from := h.ResolvePath(src)
	if !from.Success() {
		return domain.Propagate[domain.Void](from)
	}
	to := h.ResolvePath(dest)
	if !to.Success() {
		return domain.Propagate[domain.Void](to)
	}

	if err := h.deps.FS.CopyAll(from.Value(), to.Value()); err != nil {
		h.deps.Logger.Error("Error copying dir",
			ux.Field("code", fs.Code(err)),
			ux.Field("from", src),
			ux.Field("to", dest),
			ux.Field("error", err),
		)
		return domain.Fail[domain.Void](domain.NewError(
			domain.KindCopy,
			fmt.Sprintf("Error copying absolute from '%s' to '%s'", src, dest),
			err,
		))
	}
	return domain.Ok(domain.Void{})
}
