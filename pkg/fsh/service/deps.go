package service

import (
	"github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/go-go-golems/fs-helpers/pkg/fsh/ux"
)

// Deps contains all external dependencies of the helpers
type Deps struct {
	FS       fs.FileSystem
	Prompter ux.Prompter
	Logger   ux.Logger
}

// NewDeps creates a new dependencies container with production implementations
func NewDeps() *Deps {
	return &Deps{
		FS:       fs.NewOSFileSystem(),
		Prompter: ux.NewPrompter(),
		Logger:   ux.NewZerologLogger(),
	}
}

// NewMockDeps runs the helpers against an in-memory filesystem rooted at cwd.
// A nil store gets a fresh one.
func NewMockDeps(cwd string, store *fs.Store) *Deps {
	return &Deps{
		FS:       fs.NewMockFileSystem(cwd, fs.WithStore(store)),
		Prompter: ux.NewPrompter(),
		Logger:   ux.NewZerologLogger(),
	}
}

// NewTestDeps creates dependencies suitable for testing
func NewTestDeps(fileSystem fs.FileSystem, prompter ux.Prompter, logger ux.Logger) *Deps {
	return &Deps{
		FS:       fileSystem,
		Prompter: prompter,
		Logger:   logger,
	}
}
