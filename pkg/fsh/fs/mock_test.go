package fs

import (
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMock(t *testing.T) *MockFileSystem {
	t.Helper()
	return NewMockFileSystem("/work")
}

func TestMockWorkingDirectoryIsImplicit(t *testing.T) {
	m := newTestMock(t)

	cwd, err := m.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "/work", cwd)

	for _, p := range []string{"/", "/work"} {
		assert.True(t, m.Exists(p), p)
		info, err := m.Lstat(p)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.False(t, m.Exists("/elsewhere"))
	assert.Equal(t, 0, m.Store().Len())
}

func TestMockMkdirAll(t *testing.T) {
	m := newTestMock(t)

	first, err := m.MkdirAll("/work/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, "/work/a", first)
	assert.Equal(t, []string{"/work/a", "/work/a/b", "/work/a/b/c"}, m.Store().Paths())

	first, err = m.MkdirAll("/work/a/b")
	require.NoError(t, err)
	assert.Empty(t, first)

	first, err = m.MkdirAll("/work/a/d")
	require.NoError(t, err)
	assert.Equal(t, "/work/a/d", first)

	require.NoError(t, m.OutputFile("/work/file", []byte("x")))
	_, err = m.MkdirAll("/work/file")
	assert.ErrorIs(t, err, ErrNotDir)
	_, err = m.MkdirAll("/work/file/sub")
	assert.ErrorIs(t, err, ErrNotDir)
	assert.False(t, m.Exists("/work/file/sub"))
}

func TestMockEnsureFileKeepsContent(t *testing.T) {
	m := newTestMock(t)

	require.NoError(t, m.OutputFile("/work/f", []byte("X")))
	require.NoError(t, m.EnsureFile("/work/f"))
	data, err := m.ReadFile("/work/f")
	require.NoError(t, err)
	assert.Equal(t, "X", string(data))

	require.NoError(t, m.EnsureFile("/work/new/empty"))
	assert.True(t, m.Store().Has("/work/new"))
	data, err = m.ReadFile("/work/new/empty")
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.ErrorIs(t, m.EnsureFile("/work/new"), ErrIsDir)
}

func TestMockReadFile(t *testing.T) {
	m := newTestMock(t)
	require.NoError(t, m.OutputFile("/work/f", []byte("abc")))

	data, err := m.ReadFile("/work/f")
	require.NoError(t, err)
	data[0] = 'X'
	again, _ := m.ReadFile("/work/f")
	assert.Equal(t, "abc", string(again))

	_, err = m.ReadFile("/work/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = m.ReadFile("/work")
	assert.ErrorIs(t, err, ErrIsDir)
}

func TestMockOutputFileKeepsMode(t *testing.T) {
	m := newTestMock(t)
	require.NoError(t, m.OutputFile("/work/f", []byte("a")))
	require.NoError(t, m.Chmod("/work/f", 0o600))
	require.NoError(t, m.OutputFile("/work/f", []byte("b")))

	info, err := m.Lstat("/work/f")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, int64(1), info.Size())
	assert.Zero(t, info.Mode()&(fs.ModeSymlink|fs.ModeDevice|fs.ModeNamedPipe|fs.ModeSocket))
}

func TestMockChmodMissing(t *testing.T) {
	m := newTestMock(t)
	assert.ErrorIs(t, m.Chmod("/work/nope", 0o644), fs.ErrNotExist)
	assert.NoError(t, m.Chmod("/work", 0o700))
}

func TestMockRename(t *testing.T) {
	setup := func(t *testing.T) *MockFileSystem {
		m := newTestMock(t)
		_, err := m.MkdirAll("/work/src/nested")
		require.NoError(t, err)
		require.NoError(t, m.OutputFile("/work/src/nested/f", []byte("payload")))
		require.NoError(t, m.OutputFile("/work/srcx/keep", []byte("keep")))
		return m
	}

	t.Run("moves subtree only", func(t *testing.T) {
		m := setup(t)
		require.NoError(t, m.Rename("/work/src", "/work/dst"))
		assert.Equal(t, []string{
			"/work/dst",
			"/work/dst/nested",
			"/work/dst/nested/f",
			"/work/srcx",
			"/work/srcx/keep",
		}, m.Store().Paths())
	})

	t.Run("missing source", func(t *testing.T) {
		m := setup(t)
		err := m.Rename("/work/none", "/work/dst")
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, "ENOENT", Code(err))

		var linkErr *os.LinkError
		require.ErrorAs(t, err, &linkErr)
		assert.Equal(t, "rename", linkErr.Op)
		assert.Equal(t, "/work/none", linkErr.Old)
		assert.Equal(t, "/work/dst", linkErr.New)
	})

	t.Run("missing destination parent", func(t *testing.T) {
		m := setup(t)
		assert.ErrorIs(t, m.Rename("/work/src", "/work/no/dst"), fs.ErrNotExist)
		assert.True(t, m.Exists("/work/src/nested/f"))
	})

	t.Run("into own subtree", func(t *testing.T) {
		m := setup(t)
		err := m.Rename("/work/src", "/work/src/nested/inner")
		assert.ErrorIs(t, err, fs.ErrInvalid)
		assert.Equal(t, "EINVAL", Code(err))
	})

	t.Run("over non-empty directory", func(t *testing.T) {
		m := setup(t)
		err := m.Rename("/work/src", "/work/srcx")
		assert.ErrorIs(t, err, ErrNotEmpty)
		assert.Equal(t, "ENOTEMPTY", Code(err))
		assert.True(t, m.Exists("/work/srcx/keep"))
	})

	t.Run("over empty directory", func(t *testing.T) {
		m := setup(t)
		_, err := m.MkdirAll("/work/empty")
		require.NoError(t, err)
		require.NoError(t, m.Rename("/work/src", "/work/empty"))
		assert.True(t, m.Exists("/work/empty/nested/f"))
		assert.False(t, m.Exists("/work/src"))
	})

	t.Run("directory over file", func(t *testing.T) {
		m := setup(t)
		assert.ErrorIs(t, m.Rename("/work/src", "/work/srcx/keep"), ErrNotDir)
	})

	t.Run("file over directory", func(t *testing.T) {
		m := setup(t)
		assert.ErrorIs(t, m.Rename("/work/srcx/keep", "/work/src"), ErrIsDir)
	})

	t.Run("file over file", func(t *testing.T) {
		m := setup(t)
		require.NoError(t, m.Rename("/work/srcx/keep", "/work/src/nested/f"))
		data, err := m.ReadFile("/work/src/nested/f")
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("over working directory", func(t *testing.T) {
		m := setup(t)
		assert.ErrorIs(t, m.Rename("/work/src", "/work"), ErrNotEmpty)
	})
}

func TestMockCopyAll(t *testing.T) {
	setup := func(t *testing.T) *MockFileSystem {
		m := newTestMock(t)
		_, err := m.MkdirAll("/work/src/empty")
		require.NoError(t, err)
		require.NoError(t, m.OutputFile("/work/src/f", []byte("data")))
		return m
	}

	t.Run("copies into new parents", func(t *testing.T) {
		m := setup(t)
		require.NoError(t, m.CopyAll("/work/src", "/work/out/copy"))
		assert.True(t, m.Store().Has("/work/out"))
		assert.True(t, m.Exists("/work/out/copy/empty"))
		data, err := m.ReadFile("/work/out/copy/f")
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))

		require.NoError(t, m.OutputFile("/work/out/copy/f", []byte("changed")))
		data, _ = m.ReadFile("/work/src/f")
		assert.Equal(t, "data", string(data))
	})

	t.Run("existing destination writes nothing", func(t *testing.T) {
		m := setup(t)
		_, err := m.MkdirAll("/work/dst")
		require.NoError(t, err)
		before := m.Store().Paths()

		err = m.CopyAll("/work/src", "/work/dst")
		assert.ErrorIs(t, err, fs.ErrExist)
		assert.Equal(t, "EEXIST", Code(err))
		assert.Equal(t, before, m.Store().Paths())
	})

	t.Run("into itself", func(t *testing.T) {
		m := setup(t)
		before := m.Store().Paths()
		assert.ErrorIs(t, m.CopyAll("/work/src", "/work/src/inner"), fs.ErrInvalid)
		assert.Equal(t, before, m.Store().Paths())
	})

	t.Run("missing source", func(t *testing.T) {
		m := setup(t)
		assert.ErrorIs(t, m.CopyAll("/work/none", "/work/dst"), fs.ErrNotExist)
	})

	t.Run("parent is a file", func(t *testing.T) {
		m := setup(t)
		require.NoError(t, m.OutputFile("/work/plain", nil))
		before := m.Store().Paths()
		assert.ErrorIs(t, m.CopyAll("/work/src", "/work/plain/copy"), ErrNotDir)
		assert.Equal(t, before, m.Store().Paths())
	})

	t.Run("single file", func(t *testing.T) {
		m := setup(t)
		require.NoError(t, m.CopyAll("/work/src/f", "/work/f2"))
		data, err := m.ReadFile("/work/f2")
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})
}

func TestMockRemoveAll(t *testing.T) {
	m := newTestMock(t)
	require.NoError(t, m.OutputFile("/work/foo/a", []byte("a")))
	require.NoError(t, m.OutputFile("/work/foobar/b", []byte("b")))

	require.NoError(t, m.RemoveAll("/work/foo"))
	assert.False(t, m.Exists("/work/foo"))
	assert.False(t, m.Exists("/work/foo/a"))
	assert.True(t, m.Exists("/work/foobar/b"))

	assert.NoError(t, m.RemoveAll("/work/never"))
}

func TestMockSharedStore(t *testing.T) {
	store := NewStore()
	a := NewMockFileSystem("/work", WithStore(store))
	b := NewMockFileSystem("/other", WithStore(store))

	require.NoError(t, a.OutputFile("/work/f", []byte("shared")))
	data, err := b.ReadFile("/work/f")
	require.NoError(t, err)
	assert.Equal(t, "shared", string(data))
	assert.Same(t, store, b.Store())
}

func TestMockSeedFile(t *testing.T) {
	src := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(src, "/repo/config/app.yaml", []byte("name: app\n"), 0o600))
	require.NoError(t, src.MkdirAll("/repo/dir", 0o755))

	m := NewMockFileSystem("/repo", WithSeedSource(src))
	require.NoError(t, m.SeedFile("/repo/config/app.yaml"))

	data, err := m.ReadFile("/repo/config/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: app\n", string(data))
	assert.True(t, m.Store().Has("/repo/config"))
	info, err := m.Lstat("/repo/config/app.yaml")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	assert.Error(t, m.SeedFile("/repo/missing"))
	assert.Error(t, m.SeedFile("/repo/dir"))
}

func TestCode(t *testing.T) {
	cases := map[string]error{
		"":          nil,
		"ENOENT":    &fs.PathError{Op: "open", Path: "/x", Err: ErrNotExist},
		"EEXIST":    &fs.PathError{Op: "copy", Path: "/x", Err: ErrExist},
		"ENOTDIR":   ErrNotDir,
		"EISDIR":    ErrIsDir,
		"ENOTEMPTY": ErrNotEmpty,
		"EACCES":    fs.ErrPermission,
		"EINVAL":    ErrInvalid,
		"EUNKNOWN":  assert.AnError,
	}
	for code, err := range cases {
		assert.Equal(t, code, Code(err), "error %v", err)
	}
}
