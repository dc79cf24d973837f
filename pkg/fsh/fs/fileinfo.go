package fs

import (
	"io/fs"
	"time"
)

// entryInfo implements fs.FileInfo for mock entries. Link, device, pipe and
// socket mode bits are never set.
type entryInfo struct {
	name  string
	size  int64
	mode  fs.FileMode
	isDir bool
}

func newEntryInfo(name string, e *Entry) *entryInfo {
	if e.Kind == KindDir {
		return &entryInfo{name: name, mode: fs.ModeDir | e.Mode.Perm(), isDir: true}
	}
	return &entryInfo{name: name, size: int64(len(e.Content)), mode: e.Mode.Perm()}
}

func (i *entryInfo) Name() string       { return i.name }
func (i *entryInfo) Size() int64        { return i.size }
func (i *entryInfo) Mode() fs.FileMode  { return i.mode }
func (i *entryInfo) ModTime() time.Time { return time.Unix(0, 0) }
func (i *entryInfo) IsDir() bool        { return i.isDir }
func (i *entryInfo) Sys() interface{}   { return nil }
