package fs

import (
	"io/fs"
	"syscall"

	"github.com/pkg/errors"
)

// Errors reported by the mock backend inside *fs.PathError and *os.LinkError
// values. ErrNotExist, ErrExist and ErrInvalid are the io/fs sentinels so that
// errors.Is works the same against both backends.
var (
	ErrNotExist = fs.ErrNotExist
	ErrExist    = fs.ErrExist
	ErrInvalid  = fs.ErrInvalid
	ErrNotDir   = errors.New("not a directory")
	ErrIsDir    = errors.New("is a directory")
	ErrNotEmpty = errors.New("directory not empty")
)

// Code maps a backend error to the short errno-style code that gets logged
// next to a failed operation.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotEmpty), errors.Is(err, syscall.ENOTEMPTY):
		return "ENOTEMPTY"
	case errors.Is(err, ErrNotDir), errors.Is(err, syscall.ENOTDIR):
		return "ENOTDIR"
	case errors.Is(err, ErrIsDir), errors.Is(err, syscall.EISDIR):
		return "EISDIR"
	case errors.Is(err, fs.ErrNotExist):
		return "ENOENT"
	case errors.Is(err, fs.ErrExist):
		return "EEXIST"
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	case errors.Is(err, fs.ErrInvalid), errors.Is(err, syscall.EINVAL):
		return "EINVAL"
	default:
		return "EUNKNOWN"
	}
}
