package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/config"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/service"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/snapshot"
	"github.com/go-go-golems/fs-helpers/pkg/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ErrOperationFailed is returned by commands whose helper call failed. The
// failure has already been printed.
var ErrOperationFailed = errors.New("operation failed")

const (
	outputText = "text"
	outputJSON = "json"
)

// AddGlobalFlags registers the flags shared by every command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("backend", config.BackendOS, "Filesystem backend (os, mock)")
	cmd.PersistentFlags().String("workdir", "", "Directory relative paths are resolved against")
	cmd.PersistentFlags().String("state", config.DefaultStateFile, "State file of the mock backend")
	cmd.PersistentFlags().StringSlice("seed", nil, "Real files copied into a fresh mock backend")
	cmd.PersistentFlags().StringP("output", "o", outputText, "Output format (text, json)")
}

// loadSettings resolves the effective configuration: flags win over the
// environment, which wins over .fsh.yaml, which wins over defaults.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.New(fs.NewOSFileSystem()).Load(".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("workdir") {
		cfg.WorkDir, _ = flags.GetString("workdir")
	}
	if flags.Changed("state") {
		cfg.StateFile, _ = flags.GetString("state")
	}
	if flags.Changed("seed") {
		cfg.SeedFiles, _ = flags.GetStringSlice("seed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format {
	case outputText, outputJSON:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format %q", format)
	}
}

// session is one command invocation's view of the chosen backend.
type session struct {
	helpers *service.Helpers
	deps    *service.Deps
	cfg     *config.Config
	format  string

	stateFile *snapshot.File
	state     *snapshot.State
	// discard skips writing the state back on Close
	discard bool
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return nil, err
	}

	workDir := cfg.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, errors.Wrap(err, "failed to get current directory")
		}
	}
	if workDir, err = filepath.Abs(workDir); err != nil {
		return nil, errors.Wrap(err, "failed to resolve working directory")
	}

	s := &session{cfg: cfg, format: format}

	if cfg.Backend == config.BackendOS {
		deps := service.NewDeps()
		deps.FS = fs.NewOSFileSystem(fs.WithWorkDir(workDir))
		s.deps = deps
		s.helpers = service.NewHelpers(deps)
		return s, nil
	}

	statePath, err := filepath.Abs(cfg.StateFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve state file")
	}
	disk := fs.NewOSFileSystem()
	s.stateFile = snapshot.NewFile(disk, statePath)
	if err := s.stateFile.Lock(ctx); err != nil {
		return nil, err
	}

	fresh := !disk.Exists(statePath)
	state, err := s.stateFile.Load(workDir)
	if err != nil {
		_ = s.stateFile.Unlock()
		return nil, err
	}
	state.WorkDir = workDir
	s.state = state

	s.deps = service.NewMockDeps(workDir, state.Store)
	var opts []service.Option
	if fresh {
		opts = append(opts, service.WithSeedFiles(cfg.SeedFiles...))
	}
	s.helpers = service.NewHelpers(s.deps, opts...)
	return s, nil
}

// Close writes the mock store back and releases the state lock.
func (s *session) Close() error {
	if s.stateFile == nil {
		return nil
	}
	defer func() {
		if err := s.stateFile.Unlock(); err != nil {
			output.LogWarn(
				fmt.Sprintf("Failed to unlock state file: %v", err),
				"Failed to unlock state file",
				"path", s.stateFile.Path(),
				"error", err,
			)
		}
	}()
	if s.discard {
		return nil
	}
	return s.stateFile.Save(s.state)
}

// withSession runs fn with an open session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "failed to save mock state")
		}
	}()
	return fn(ctx, s)
}

// printResult renders res in the session's output format. text formats a
// successful value for humans.
func printResult[T any](s *session, res domain.Result[T], text func(T) string) error {
	if s.format == outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal result to JSON")
		}
		fmt.Println(string(data))
	} else if res.Success() {
		output.PrintSuccess("%s", text(res.Value()))
	} else {
		output.PrintError("%s", res.ErrorMessage())
	}

	if !res.Success() {
		return ErrOperationFailed
	}
	return nil
}

// refuseWorkDirRemoval fails when removing path would take the working
// directory with it. Rejected paths are left to the helpers to report.
func refuseWorkDirRemoval(s *session, path string) error {
	if path == "" {
		return nil
	}
	cwd, err := s.deps.FS.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}
	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(cwd, target)
	}
	target = filepath.Clean(target)

	sep := string(filepath.Separator)
	if target == cwd || target == sep || strings.HasPrefix(cwd, target+sep) {
		output.PrintError("refusing to remove %s: it contains the working directory %s", path, cwd)
		return ErrOperationFailed
	}
	return nil
}
