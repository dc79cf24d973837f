// Package config loads and saves the per-project .fsh.yaml file.
package config

import (
	"os"
	"path/filepath"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FileName = ".fsh.yaml"

	BackendOS   = "os"
	BackendMock = "mock"

	DefaultStateFile = ".fsh-state.yaml"

	EnvBackend = "FSH_BACKEND"
	EnvWorkDir = "FSH_WORKDIR"
	EnvState   = "FSH_STATE"
)

// ErrConfigNotFound is returned by Read when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Config selects the backend and where the mock keeps its state.
type Config struct {
	Backend   string   `yaml:"backend"`
	WorkDir   string   `yaml:"workdir,omitempty"`
	StateFile string   `yaml:"state_file,omitempty"`
	SeedFiles []string `yaml:"seed_files,omitempty"`
}

// Default returns the configuration used when no file is present. An empty
// WorkDir means the process working directory.
func Default() *Config {
	return &Config{
		Backend:   BackendOS,
		StateFile: DefaultStateFile,
	}
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendOS, BackendMock:
		return nil
	default:
		return errors.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendOS, BackendMock)
	}
}

// Service handles configuration management
type Service struct {
	fs fs.FileSystem
}

// New creates a new config service
func New(fileSystem fs.FileSystem) *Service {
	return &Service{fs: fileSystem}
}

// Path returns the config file location for dir.
func (s *Service) Path(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Join(dir, FileName), nil
	}
	cwd, err := s.fs.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get working directory")
	}
	return filepath.Join(cwd, dir, FileName), nil
}

// Read parses the config file in dir without applying defaults or
// environment overrides.
func (s *Service) Read(dir string) (*Config, error) {
	configPath, err := s.Path(dir)
	if err != nil {
		return nil, err
	}
	if !s.fs.Exists(configPath) {
		return nil, ErrConfigNotFound
	}

	data, err := s.fs.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", configPath)
	}
	return &cfg, nil
}

// Load returns the effective configuration for dir: defaults, overlaid by
// the config file if there is one, overlaid by FSH_* environment variables.
// Relative paths from the file are taken relative to the file's directory.
func (s *Service) Load(dir string) (*Config, error) {
	cfg := Default()

	fileCfg, err := s.Read(dir)
	switch {
	case errors.Is(err, ErrConfigNotFound):
	case err != nil:
		return nil, err
	default:
		configPath, _ := s.Path(dir)
		base := filepath.Dir(configPath)
		if fileCfg.Backend != "" {
			cfg.Backend = fileCfg.Backend
		}
		if fileCfg.WorkDir != "" {
			cfg.WorkDir = relativeTo(base, fileCfg.WorkDir)
		}
		if fileCfg.StateFile != "" {
			cfg.StateFile = relativeTo(base, fileCfg.StateFile)
		}
		for _, seed := range fileCfg.SeedFiles {
			cfg.SeedFiles = append(cfg.SeedFiles, relativeTo(base, seed))
		}
	}

	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv(EnvWorkDir); ok && v != "" {
		cfg.WorkDir = v
	}
	if v, ok := os.LookupEnv(EnvState); ok && v != "" {
		cfg.StateFile = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the config file in dir.
func (s *Service) Save(dir string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	configPath, err := s.Path(dir)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := s.fs.OutputFile(configPath, data); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

func relativeTo(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
