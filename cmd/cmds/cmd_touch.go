package cmds

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/service"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewTouchCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "touch <file>",
		Short: "Make sure a file exists",
		Long: `Create an empty file, and its parent directories, unless a file is already
there. Existing content is never changed.

Examples:
  fsh touch logs/app.log
  fsh touch secrets/token --mode 0600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runTouch(ctx, s, args[0], mode)
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Octal permissions applied to the file")
	carapace.Gen(cmd).PositionalCompletion(carapace.ActionFiles())

	return cmd
}

func runTouch(ctx context.Context, s *session, path string, mode string) error {
	var opts []service.TouchOption
	if mode != "" {
		perm, err := strconv.ParseUint(mode, 8, 32)
		if err != nil {
			return errors.Wrapf(err, "invalid mode %q", mode)
		}
		opts = append(opts, service.WithMode(os.FileMode(perm)))
	}

	return printResult(s, s.helpers.TouchFile(path, opts...), func(domain.Void) string {
		return fmt.Sprintf("Touched %s", path)
	})
}
