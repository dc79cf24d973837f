package config

import (
	"testing"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvWorkDir, "")
	t.Setenv(EnvState, "")
}

func TestReadMissing(t *testing.T) {
	svc := New(fs.NewMockFileSystem("/proj"))
	_, err := svc.Read(".")
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	svc := New(fs.NewMockFileSystem("/proj"))

	cfg, err := svc.Load(".")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, BackendOS, cfg.Backend)
	assert.Equal(t, DefaultStateFile, cfg.StateFile)
	assert.Empty(t, cfg.WorkDir)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	mock := fs.NewMockFileSystem("/proj")
	require.NoError(t, mock.OutputFile("/proj/.fsh.yaml", []byte(`backend: mock
workdir: sandbox
state_file: /var/state.yaml
seed_files:
  - go.mod
  - /etc/hosts
`)))
	svc := New(mock)

	cfg, err := svc.Load(".")
	require.NoError(t, err)
	assert.Equal(t, BackendMock, cfg.Backend)
	assert.Equal(t, "/proj/sandbox", cfg.WorkDir)
	assert.Equal(t, "/var/state.yaml", cfg.StateFile)
	assert.Equal(t, []string{"/proj/go.mod", "/etc/hosts"}, cfg.SeedFiles)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	mock := fs.NewMockFileSystem("/proj")
	require.NoError(t, mock.OutputFile("/proj/.fsh.yaml", []byte("backend: mock\n")))

	cfg, err := New(mock).Load("/proj")
	require.NoError(t, err)
	assert.Equal(t, BackendMock, cfg.Backend)
	assert.Equal(t, DefaultStateFile, cfg.StateFile)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	mock := fs.NewMockFileSystem("/proj")
	require.NoError(t, mock.OutputFile("/proj/.fsh.yaml", []byte("backend: mock\nworkdir: sandbox\n")))

	t.Setenv(EnvBackend, BackendOS)
	t.Setenv(EnvWorkDir, "/elsewhere")
	t.Setenv(EnvState, "/tmp/state.yaml")

	cfg, err := New(mock).Load(".")
	require.NoError(t, err)
	assert.Equal(t, BackendOS, cfg.Backend)
	assert.Equal(t, "/elsewhere", cfg.WorkDir)
	assert.Equal(t, "/tmp/state.yaml", cfg.StateFile)
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)

	t.Run("unknown backend", func(t *testing.T) {
		mock := fs.NewMockFileSystem("/proj")
		require.NoError(t, mock.OutputFile("/proj/.fsh.yaml", []byte("backend: s3\n")))
		_, err := New(mock).Load(".")
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		mock := fs.NewMockFileSystem("/proj")
		require.NoError(t, mock.OutputFile("/proj/.fsh.yaml", []byte("backend: [mock\n")))
		_, err := New(mock).Load(".")
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrConfigNotFound))
	})
}

func TestSaveThenRead(t *testing.T) {
	mock := fs.NewMockFileSystem("/proj")
	svc := New(mock)

	cfg := &Config{Backend: BackendMock, StateFile: "state.yaml", SeedFiles: []string{"a.txt"}}
	require.NoError(t, svc.Save("nested", cfg))
	assert.True(t, mock.Exists("/proj/nested/.fsh.yaml"))

	read, err := svc.Read("nested")
	require.NoError(t, err)
	assert.Equal(t, cfg, read)

	assert.Error(t, svc.Save(".", &Config{Backend: "ftp"}))
	assert.False(t, mock.Exists("/proj/.fsh.yaml"))
}
