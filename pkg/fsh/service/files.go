package service

import (
	"fmt"
	"os"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/ux"
)

// TouchOption is a functional option for TouchFile
type TouchOption func(*touchRequest)

type touchRequest struct {
	mode    os.FileMode
	hasMode bool
}

// WithMode applies mode to the file after it is ensured
func WithMode(mode os.FileMode) TouchOption {
	return func(r *touchRequest) {
		r.mode = mode
		r.hasMode = true
	}
}

// TouchFile makes sure a file exists at path, creating an empty one and its
// parents if needed. An existing file keeps its content.
func (h *Helpers) TouchFile(path string, opts ...TouchOption) domain.Result[domain.Void] {
	var req touchRequest
	for _, opt := range opts {
		opt(&req)
	}

	res := h.ResolvePath(path)
	if !res.Success() {
		return domain.Propagate[domain.Void](res)
	}
	abs := res.Value()

	if err := h.deps.FS.EnsureFile(abs); err != nil {
		return h.fileFailed(domain.KindTouchFile, "Error touching file", path, err)
	}
	if req.hasMode {
		if err := h.deps.FS.Chmod(abs, req.mode); err != nil {
			return h.fileFailed(domain.KindTouchFile, "Error touching file", path, err)
		}
	}
	return domain.Ok(domain.Void{})
}

// WriteFile replaces the content of the file at path with data, creating the
// file and its parents if needed.
func (h *Helpers) WriteFile(path string, data []byte) domain.Result[domain.Void] {
	res := h.ResolvePath(path)
	if !res.Success() {
		return domain.Propagate[domain.Void](res)
	}

	if err := h.deps.FS.OutputFile(res.Value(), data); err != nil {
		return h.fileFailed(domain.KindWriteFile, "Error writing file", path, err)
	}
	return domain.Ok(domain.Void{})
}

// ReadFile returns the content of the file at path. Reading a missing path or
// a directory fails.
func (h *Helpers) ReadFile(path string) domain.Result[[]byte] {
	res := h.ResolvePath(path)
	if !res.Success() {
		return domain.Propagate[[]byte](res)
	}

	data, err := h.deps.FS.ReadFile(res.Value())
	if err != nil {
		h.deps.Logger.Error("Error reading file", ux.Field("path", path), ux.Field("code", fs.Code(err)))
		return domain.Fail[[]byte](domain.NewError(
			domain.KindReadFile,
			fmt.Sprintf("Error reading file: '%s'", path),
			err,
		))
	}
	return domain.Ok(data)
}

func (h *Helpers) fileFailed(kind domain.ErrorKind, msg, path string, cause error) domain.Result[domain.Void] {
	h.deps.Logger.Error(msg, ux.Field("path", path), ux.Field("code", fs.Code(cause)))
	return domain.Fail[domain.Void](domain.NewError(
		kind,
		fmt.Sprintf("%s: '%s'", msg, path),
		cause,
	))
}
