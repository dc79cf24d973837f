package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOS(t *testing.T) (*OSFileSystem, string) {
	t.Helper()
	dir, err := os.MkdirTemp("", "fsos")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return NewOSFileSystem(WithWorkDir(dir)), dir
}

func TestOSGetwd(t *testing.T) {
	o, dir := newTestOS(t)
	cwd, err := o.Getwd()
	require.NoError(t, err)
	assert.Equal(t, dir, cwd)

	wd, err := os.Getwd()
	require.NoError(t, err)
	cwd, err = NewOSFileSystem().Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cwd)
}

func TestOSMkdirAllReportsFirstCreated(t *testing.T) {
	o, dir := newTestOS(t)

	first, err := o.MkdirAll(filepath.Join(dir, "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a"), first)

	first, err = o.MkdirAll(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.Empty(t, first)

	require.NoError(t, o.OutputFile(filepath.Join(dir, "file"), []byte("x")))
	_, err = o.MkdirAll(filepath.Join(dir, "file"))
	assert.Error(t, err)
	assert.Equal(t, "ENOTDIR", Code(err))
}

func TestOSEnsureFileKeepsContent(t *testing.T) {
	o, dir := newTestOS(t)
	path := filepath.Join(dir, "notes")

	require.NoError(t, o.OutputFile(path, []byte("X")))
	require.NoError(t, o.EnsureFile(path))
	data, err := o.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "X", string(data))

	require.NoError(t, o.EnsureFile(filepath.Join(dir, "deep", "empty")))
	info, err := o.Lstat(filepath.Join(dir, "deep", "empty"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Zero(t, info.Size())

	err = o.EnsureFile(filepath.Join(dir, "deep"))
	assert.ErrorIs(t, err, ErrIsDir)
}

func TestOSRenameMissing(t *testing.T) {
	o, dir := newTestOS(t)
	err := o.Rename(filepath.Join(dir, "none"), filepath.Join(dir, "other"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "ENOENT", Code(err))
}

func TestOSCopyAll(t *testing.T) {
	o, dir := newTestOS(t)
	src := filepath.Join(dir, "src")
	require.NoError(t, o.OutputFile(filepath.Join(src, "sub", "f"), []byte("data")))
	_, err := o.MkdirAll(filepath.Join(src, "empty"))
	require.NoError(t, err)
	require.NoError(t, o.Chmod(filepath.Join(src, "sub", "f"), 0o600))

	t.Run("copies the tree", func(t *testing.T) {
		dest := filepath.Join(dir, "out", "copy")
		require.NoError(t, o.CopyAll(src, dest))
		data, err := o.ReadFile(filepath.Join(dest, "sub", "f"))
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
		assert.True(t, o.Exists(filepath.Join(dest, "empty")))

		info, err := o.Lstat(filepath.Join(dest, "sub", "f"))
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("existing destination", func(t *testing.T) {
		dest := filepath.Join(dir, "taken")
		require.NoError(t, o.OutputFile(filepath.Join(dest, "keep"), []byte("keep")))

		err := o.CopyAll(src, dest)
		assert.ErrorIs(t, err, fs.ErrExist)
		assert.False(t, o.Exists(filepath.Join(dest, "sub")))
	})

	t.Run("into itself", func(t *testing.T) {
		err := o.CopyAll(src, filepath.Join(src, "inner"))
		assert.ErrorIs(t, err, fs.ErrInvalid)
		assert.False(t, o.Exists(filepath.Join(src, "inner")))
	})

	t.Run("missing source", func(t *testing.T) {
		err := o.CopyAll(filepath.Join(dir, "none"), filepath.Join(dir, "none-copy"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.False(t, o.Exists(filepath.Join(dir, "none-copy")))
	})
}

// snapshotTree lists everything below root as "rel:kind[:content]" lines.
func snapshotTree(t *testing.T, fsys FileSystem, root string, paths []string) []string {
	t.Helper()
	var out []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		info, err := fsys.Lstat(p)
		require.NoError(t, err)
		if info.IsDir() {
			out = append(out, filepath.ToSlash(rel)+":dir")
			continue
		}
		data, err := fsys.ReadFile(p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel)+":file:"+string(data))
	}
	sort.Strings(out)
	return out
}

func walkOS(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != root {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)
	return paths
}

func TestBackendsAgree(t *testing.T) {
	o, osRoot := newTestOS(t)
	m := NewMockFileSystem("/work")
	mockRoot := "/work"

	// every step must succeed or fail the same way on both backends
	steps := []func(fsys FileSystem, root string) error{
		func(fsys FileSystem, root string) error {
			_, err := fsys.MkdirAll(filepath.Join(root, "proj", "src"))
			return err
		},
		func(fsys FileSystem, root string) error {
			return fsys.OutputFile(filepath.Join(root, "proj", "src", "main.txt"), []byte("main"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.EnsureFile(filepath.Join(root, "proj", "README"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.OutputFile(filepath.Join(root, "projects", "other.txt"), []byte("other"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.CopyAll(filepath.Join(root, "proj"), filepath.Join(root, "proj-copy"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.CopyAll(filepath.Join(root, "proj"), filepath.Join(root, "projects"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.Rename(filepath.Join(root, "proj"), filepath.Join(root, "renamed"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.Rename(filepath.Join(root, "proj"), filepath.Join(root, "again"))
		},
		func(fsys FileSystem, root string) error {
			return fsys.RemoveAll(filepath.Join(root, "proj-copy", "src"))
		},
		func(fsys FileSystem, root string) error {
			_, err := fsys.MkdirAll(filepath.Join(root, "renamed", "README"))
			return err
		},
	}

	for i, step := range steps {
		osErr := step(o, osRoot)
		mockErr := step(m, mockRoot)
		assert.Equal(t, Code(osErr), Code(mockErr), "step %d: os=%v mock=%v", i, osErr, mockErr)
	}

	osTree := snapshotTree(t, o, osRoot, walkOS(t, osRoot))
	mockTree := snapshotTree(t, m, mockRoot, m.Store().Paths())
	assert.Equal(t, osTree, mockTree)
	assert.Contains(t, mockTree, "renamed/src/main.txt:file:main")
	assert.Contains(t, mockTree, "projects/other.txt:file:other")
}
