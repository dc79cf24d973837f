package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/config"
	"github.com/go-go-golems/fs-helpers/pkg/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewSnapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect or reset the mock backend state",
		Long: `The mock backend keeps its in-memory filesystem in a state file between
invocations. These commands show or reset it.`,
	}

	cmd.AddCommand(newSnapshotShowCommand(), newSnapshotClearCommand())

	return cmd
}

func newSnapshotShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every entry of the mock filesystem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runSnapshotShow(ctx, s)
			})
		},
	}
}

type snapshotEntry struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Mode string `json:"mode"`
	Size int    `json:"size"`
}

func runSnapshotShow(ctx context.Context, s *session) error {
	if s.state == nil {
		return errors.Errorf("snapshot requires --backend %s", config.BackendMock)
	}

	var entries []snapshotEntry
	for _, p := range s.state.Store.Paths() {
		e, _ := s.state.Store.Get(p)
		entries = append(entries, snapshotEntry{
			Path: p,
			Kind: e.Kind.String(),
			Mode: fmt.Sprintf("%#o", e.Mode.Perm()),
			Size: len(e.Content),
		})
	}

	if s.format == outputJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal snapshot to JSON")
		}
		fmt.Println(string(data))
		return nil
	}

	output.PrintHeader("Mock filesystem: %s (%d entries)", s.stateFile.Path(), len(entries))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tMODE\tSIZE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Kind, e.Mode, e.Size, e.Path)
	}
	if err := w.Flush(); err != nil {
		output.LogWarn(
			fmt.Sprintf("Failed to flush table writer: %v", err),
			"Failed to flush table writer",
			"error", err,
		)
	}
	return nil
}

func newSnapshotClearCommand() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the mock filesystem",
		Long: `Remove every entry of the mock filesystem. With --purge the state file
itself is deleted, so the next invocation starts fresh and re-seeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runSnapshotClear(ctx, s, purge)
			})
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Delete the state file")

	return cmd
}

func runSnapshotClear(ctx context.Context, s *session, purge bool) error {
	if s.state == nil {
		return errors.Errorf("snapshot requires --backend %s", config.BackendMock)
	}

	removed := s.state.Store.Len()
	s.state.Store.Clear()

	if purge {
		if err := s.stateFile.Remove(); err != nil {
			return err
		}
		s.discard = true
		output.PrintSuccess("Deleted %s", s.stateFile.Path())
		return nil
	}

	output.PrintSuccess("Removed %d entries", removed)
	return nil
}
