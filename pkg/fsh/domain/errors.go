package domain

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies a failed helper operation.
type ErrorKind int

const (
	KindInvalidPath ErrorKind = iota + 1
	KindNotAFile
	KindNotADirectory
	KindCreateDir
	KindDeleteDir
	KindRename
	KindCopy
	KindCleanupNothingToDo
	KindReadFile
	KindWriteFile
	KindTouchFile
)

// Sentinels for errors.Is against a Result's error.
var (
	ErrInvalidPath        = errors.New("invalid path")
	ErrNotAFile           = errors.New("not a file")
	ErrNotADirectory      = errors.New("not a directory")
	ErrCreateDir          = errors.New("create dir failed")
	ErrDeleteDir          = errors.New("delete dir failed")
	ErrRename             = errors.New("rename failed")
	ErrCopy               = errors.New("copy failed")
	ErrCleanupNothingToDo = errors.New("nothing to clean up")
	ErrReadFile           = errors.New("read file failed")
	ErrWriteFile          = errors.New("write file failed")
	ErrTouchFile          = errors.New("touch file failed")
)

var kindInfo = map[ErrorKind]struct {
	name     string
	sentinel error
}{
	KindInvalidPath:        {"InvalidPath", ErrInvalidPath},
	KindNotAFile:           {"NotAFile", ErrNotAFile},
	KindNotADirectory:      {"NotADirectory", ErrNotADirectory},
	KindCreateDir:          {"CreateDirError", ErrCreateDir},
	KindDeleteDir:          {"DeleteDirError", ErrDeleteDir},
	KindRename:             {"RenameError", ErrRename},
	KindCopy:               {"CopyError", ErrCopy},
	KindCleanupNothingToDo: {"CleanupNothingToDo", ErrCleanupNothingToDo},
	KindReadFile:           {"ReadFileError", ErrReadFile},
	KindWriteFile:          {"WriteFileError", ErrWriteFile},
	KindTouchFile:          {"TouchFileError", ErrTouchFile},
}

func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "Unknown"
}

// Error is the failure carried by a Result. Message is the fixed, human
// readable text; Cause holds the backend error, if any, and is never part of
// the message.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	info, ok := kindInfo[e.Kind]
	return ok && info.sentinel == target
}
