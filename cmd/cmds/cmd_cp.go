package cmds

import (
	"context"
	"fmt"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/spf13/cobra"
)

func NewCpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cp <src> <dest>",
		Short: "Copy a directory tree",
		Long: `Copy src recursively to dest. dest must not exist yet; an existing dest is
left untouched and the copy fails.

Examples:
  fsh cp templates/service services/billing`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runCp(ctx, s, args[0], args[1])
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(PathCompletion(), carapace.ActionDirectories())

	return cmd
}

func runCp(ctx context.Context, s *session, src, dest string) error {
	return printResult(s, s.helpers.CopyDirAbsolute(src, dest), func(domain.Void) string {
		return fmt.Sprintf("Copied %s to %s", src, dest)
	})
}
