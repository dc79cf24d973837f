package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/carapace-sh/carapace"
	"github.com/charmbracelet/huh"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewRmCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <dir>...",
		Short: "Remove directories recursively",
		Long: `Remove each directory and everything below it. Paths that are not
existing directories are reported and skipped; the others are still removed.

Examples:
  # Remove two build directories after confirming
  fsh rm build dist

  # Remove without asking
  fsh rm build --force`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runRm(ctx, s, args, force)
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove without confirmation")
	carapace.Gen(cmd).PositionalAnyCompletion(carapace.ActionDirectories())

	return cmd
}

func runRm(ctx context.Context, s *session, paths []string, force bool) error {
	for _, p := range paths {
		if err := refuseWorkDirRemoval(s, p); err != nil {
			return err
		}
	}

	if !force {
		confirmed, err := s.deps.Prompter.Confirm(
			fmt.Sprintf("Remove %s and everything below?", strings.Join(paths, ", ")),
		)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				s.deps.Logger.Info("Operation cancelled")
				return nil
			}
			return errors.Wrap(err, "confirmation failed")
		}
		if !confirmed {
			s.deps.Logger.Info("Operation cancelled")
			return nil
		}
	}

	if len(paths) == 1 {
		return printResult(s, s.helpers.RemoveDirRecursive(paths[0]), removedText)
	}

	results := s.helpers.RemoveDirsRecursive(paths)
	if s.format == outputJSON {
		return printResultList(results)
	}

	failed := false
	for _, res := range results {
		if err := printResult(s, res, removedText); err != nil {
			failed = true
		}
	}
	if failed {
		return ErrOperationFailed
	}
	return nil
}

func removedText(path string) string {
	return fmt.Sprintf("Removed %s", path)
}

func printResultList[T any](results []domain.Result[T]) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal results to JSON")
	}
	fmt.Println(string(data))
	for _, res := range results {
		if !res.Success() {
			return ErrOperationFailed
		}
	}
	return nil
}
