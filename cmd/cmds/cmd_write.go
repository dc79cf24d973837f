package cmds

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/domain"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewWriteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <file> [content]",
		Short: "Write content to a file",
		Long: `Replace the content of a file, creating it and its parents if needed. The
content is read from stdin when not given as an argument.

Examples:
  fsh write VERSION 1.4.0
  git log -1 | fsh write build/LAST_COMMIT`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if len(args) == 2 {
				data = []byte(args[1])
			} else {
				var err error
				if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return errors.Wrap(err, "failed to read stdin")
				}
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runWrite(ctx, s, args[0], data)
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(carapace.ActionFiles())

	return cmd
}

func runWrite(ctx context.Context, s *session, path string, data []byte) error {
	return printResult(s, s.helpers.WriteFile(path, data), func(domain.Void) string {
		return fmt.Sprintf("Wrote %d bytes to %s", len(data), path)
	})
}

func NewCatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat <file>",
		Short: "Print a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				return runCat(ctx, s, args[0])
			})
		},
	}

	carapace.Gen(cmd).PositionalCompletion(PathCompletion())

	return cmd
}

func runCat(ctx context.Context, s *session, path string) error {
	res := s.helpers.ReadFile(path)
	if s.format == outputText && res.Success() {
		if _, err := os.Stdout.Write(res.Value()); err != nil {
			return errors.Wrap(err, "failed to write to stdout")
		}
		return nil
	}

	// JSON shows the content as text rather than base64
	content := domain.Ok(string(res.Value()))
	if !res.Success() {
		content = domain.Propagate[string](res)
	}
	return printResult(s, content, func(v string) string { return v })
}
