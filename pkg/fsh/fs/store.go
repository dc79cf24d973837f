package fs

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Kind is the type of a store entry.
type Kind int

const (
	KindFile Kind = iota + 1
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "file":
		return KindFile, nil
	case "dir":
		return KindDir, nil
	default:
		return 0, errors.Errorf("unknown entry kind %q", s)
	}
}

// Entry is one record of the mock filesystem.
type Entry struct {
	Kind    Kind
	Content []byte
	Mode    fs.FileMode
}

func newDirEntry() *Entry {
	return &Entry{Kind: KindDir, Mode: dirPerm}
}

func newFileEntry(content []byte, mode fs.FileMode) *Entry {
	return &Entry{Kind: KindFile, Content: bytes.Clone(content), Mode: mode}
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	return &Entry{Kind: e.Kind, Content: bytes.Clone(e.Content), Mode: e.Mode}
}

// Store is the flat path -> entry mapping behind MockFileSystem. Keys are
// absolute, cleaned paths. A Store is not safe for concurrent use.
type Store struct {
	entries map[string]*Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Get returns the stored entry. The entry is owned by the store.
func (s *Store) Get(path string) (*Entry, bool) {
	e, ok := s.entries[path]
	return e, ok
}

func (s *Store) Has(path string) bool {
	_, ok := s.entries[path]
	return ok
}

func (s *Store) Set(path string, e *Entry) {
	s.entries[path] = e
}

func (s *Store) Delete(path string) {
	delete(s.entries, path)
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Clear removes every entry.
func (s *Store) Clear() {
	clear(s.entries)
}

// Paths returns all keys in lexical order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// subtree returns root (when stored) and every key below it, in lexical order.
// Matching stops at path separators: "/a/foo" never matches "/a/foobar".
func (s *Store) subtree(root string) []string {
	var paths []string
	for p := range s.entries {
		if p == root || isWithin(p, root) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// isWithin reports whether p lies strictly below root.
func isWithin(p, root string) bool {
	if p == root {
		return false
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(p, prefix)
}

// rebase rewrites the from prefix of p to to.
func rebase(p, from, to string) string {
	if p == from {
		return to
	}
	return filepath.Join(to, strings.TrimPrefix(p, from))
}
