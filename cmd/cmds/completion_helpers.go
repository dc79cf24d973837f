package cmds

import (
	"path/filepath"

	"github.com/carapace-sh/carapace"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/config"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/snapshot"
)

// PathCompletion completes paths of the configured backend: real files for
// the OS backend, stored entries for the mock one.
func PathCompletion() carapace.Action {
	return carapace.ActionCallback(func(ctx carapace.Context) carapace.Action {
		disk := fs.NewOSFileSystem()
		cfg, err := config.New(disk).Load(".")
		if err != nil || cfg.Backend != config.BackendMock {
			return carapace.ActionFiles()
		}

		statePath, err := filepath.Abs(cfg.StateFile)
		if err != nil {
			return carapace.ActionMessage("failed to resolve state file")
		}
		// read without the lock, completion must never block
		state, err := snapshot.NewFile(disk, statePath).Load("")
		if err != nil {
			return carapace.ActionMessage("failed to load mock state")
		}
		return carapace.ActionValues(state.Store.Paths()...)
	})
}
