package main

import (
	"github.com/go-go-golems/fs-helpers/cmd/cmds"
	"github.com/go-go-golems/fs-helpers/pkg/output"
	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/carapace-sh/carapace"
	clay "github.com/go-go-golems/clay/pkg"
)

var rootCmd = &cobra.Command{
	Use:   "fsh",
	Short: "Filesystem helpers for provisioning scripts",
	Long: `fsh wraps a small set of filesystem operations (resolve, existence checks,
recursive create/remove/rename/copy, file read/write) behind a uniform result
format, and can run them against the real disk or an in-memory mock.

The mock backend keeps its state in a file between invocations, which makes
it a dry-run playground for provisioning sequences.

Examples:
  # Create a directory and remember where creation started
  fsh mkdir build/cache

  # Try a sequence without touching the disk
  fsh --backend mock mkdir out/a
  fsh --backend mock cp out/a out/b
  fsh --backend mock snapshot show

  # Machine readable results
  fsh exists go.mod -o json
  `,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitLoggerFromViper()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// a missing .env is fine
	_ = godotenv.Load()

	err := clay.InitViper("fs-helpers", rootCmd)
	if err != nil {
		output.PrintError("Failed to initialize configuration: %v", err)
		log.Fatal().Err(err).Msg("Failed to initialize Viper")
	}

	cmds.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		cmds.NewResolveCommand(),
		cmds.NewExistsCommand(),
		cmds.NewMkdirCommand(),
		cmds.NewRmCommand(),
		cmds.NewMvCommand(),
		cmds.NewCpCommand(),
		cmds.NewTouchCommand(),
		cmds.NewWriteCommand(),
		cmds.NewCatCommand(),
		cmds.NewAbortCommand(),
		cmds.NewSnapshotCommand(),
		cmds.NewConfigCommand(),
	)

	carapace.Gen(rootCmd)
}
