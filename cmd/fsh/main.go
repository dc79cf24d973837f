package main

import (
	"os"

	"github.com/go-go-golems/fs-helpers/cmd/cmds"
	"github.com/go-go-golems/fs-helpers/pkg/output"
	"github.com/pkg/errors"
)

func main() {
	if err := Execute(); err != nil {
		if !errors.Is(err, cmds.ErrOperationFailed) {
			output.PrintError("%v", err)
		}
		os.Exit(1)
	}
}
