package cmds

import (
	"context"
	"fmt"

	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"
)

func NewMkdirCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory and its parents",
		Long: `Create a directory and any missing parents. Prints the outermost
directory that had to be created, which is what 'fsh abort' takes to roll the
creation back.

Examples:
  # Create a nested directory
  fsh mkdir build/cache/objects

  # Create it, then undo
  fsh abort "$(fsh mkdir build/cache -o json | jq -r .value)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runMkdir(ctx, s, args[0])
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(carapace.ActionDirectories())

	return cmd
}

func runMkdir(ctx context.Context, s *session, path string) error {
	return printResult(s, s.helpers.CreateDir(path), func(first string) string {
		if first == "" {
			return fmt.Sprintf("%s already exists", path)
		}
		return fmt.Sprintf("Created %s", first)
	})
}
