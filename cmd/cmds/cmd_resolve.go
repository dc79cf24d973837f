package cmds

import (
	"context"

	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"
)

func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Validate a path and print it absolute",
		Long: `Check a path against the allowed character set and print its absolute,
cleaned form. Relative paths are taken from the working directory of the
selected backend.

Examples:
  # Resolve against the current directory
  fsh resolve ./build/../dist

  # Resolve against another directory
  fsh resolve dist --workdir /srv/app`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runResolve(ctx, s, args[0])
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(PathCompletion())

	return cmd
}

func runResolve(ctx context.Context, s *session, path string) error {
	return printResult(s, s.helpers.ResolvePath(path), func(abs string) string {
		return abs
	})
}
