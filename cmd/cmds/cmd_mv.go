package cmds

import (
	"context"

	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"
)

func NewMvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <old> <new>",
		Short: "Rename a directory",
		Long: `Move a directory, and everything below it, to a new path. The new path
must not be a non-empty directory and its parent must exist.

Examples:
  fsh mv releases/next releases/v2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runMv(ctx, s, args[0], args[1])
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(carapace.ActionDirectories(), carapace.ActionDirectories())

	return cmd
}

func runMv(ctx context.Context, s *session, oldPath, newPath string) error {
	return printResult(s, s.helpers.RenameDir(oldPath, newPath), func(msg string) string {
		return msg
	})
}
