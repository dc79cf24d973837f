package cmds

import (
	"context"
	"fmt"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/spf13/cobra"
)

func NewAbortCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abort [first-created-dir]",
		Short: "Roll back a directory creation",
		Long: `Remove the directory tree that 'fsh mkdir' reported as the first directory
it created. Without an argument, or when the directory is gone, there is
nothing to clean up and the command fails.

Examples:
  first=$(fsh mkdir out/run-42/logs -o json | jq -r .value)
  ... provisioning fails ...
  fsh abort "$first"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runAbort(ctx, s, path)
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(carapace.ActionDirectories())

	return cmd
}

func runAbort(ctx context.Context, s *session, path string) error {
	if err := refuseWorkDirRemoval(s, path); err != nil {
		return err
	}
	return printResult(s, s.helpers.AbortDirCreation(path), func(domain.Void) string {
		return fmt.Sprintf("Removed %s", path)
	})
}
