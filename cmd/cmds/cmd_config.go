package cmds

import (
	"context"
	"fmt"

	"github.com/go-go-golems/fs-helpers/pkg/fsh/config"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/output"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the project configuration",
		Long: `fsh reads .fsh.yaml from the current directory. Flags override FSH_BACKEND,
FSH_WORKDIR and FSH_STATE, which override the file, which overrides the
defaults.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigShow(cmd.Context(), cmd)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the effective configuration to .fsh.yaml",
			Long: `Write the effective configuration, including any flags given on this
command line, to .fsh.yaml in the current directory.

Examples:
  fsh config init --backend mock --seed go.mod --seed go.sum`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigInit(cmd.Context(), cmd)
			},
		},
	)

	return cmd
}

func runConfigShow(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	fmt.Print(string(data))
	return nil
}

func runConfigInit(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	svc := config.New(fs.NewOSFileSystem())
	path, err := svc.Path(".")
	if err != nil {
		return err
	}
	if err := svc.Save(".", cfg); err != nil {
		return err
	}
	output.PrintSuccess("Wrote %s", path)
	return nil
}
