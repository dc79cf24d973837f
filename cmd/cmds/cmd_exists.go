package cmds

import (
	"context"
	"fmt"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewExistsCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "exists <path>",
		Short: "Check whether a file or directory exists",
		Long: `Report whether a regular file (--kind file) or a directory (--kind dir)
exists at path. Finding something of the other kind is an error.

Examples:
  # Is there a go.mod here?
  fsh exists go.mod

  # Is build a directory?
  fsh exists build --kind dir`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runExists(ctx, s, args[0], kind)
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "file", "What to look for (file, dir)")
	carapace.Gen(cmd).FlagCompletion(carapace.ActionMap{
		"kind": carapace.ActionValues("file", "dir"),
	})
	carapace.Gen(cmd).PositionalCompletion(PathCompletion())

	return cmd
}

func runExists(ctx context.Context, s *session, path string, kind string) error {
	var res domain.Result[bool]
	switch kind {
	case "file":
		res = s.helpers.FileExists(path)
	case "dir":
		res = s.helpers.DirExists(path)
	default:
		return errors.Errorf("unknown kind %q (expected file or dir)", kind)
	}

	return printResult(s, res, func(found bool) string {
		if found {
			return fmt.Sprintf("%s exists", path)
		}
		return fmt.Sprintf("%s does not exist", path)
	})
}
