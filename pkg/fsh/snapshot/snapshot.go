// Package snapshot persists a mock filesystem store as YAML so that a mock
// backend can outlive a single process.
package snapshot

import (
	"io/fs"
	"path/filepath"
	"strconv"

	fsh "github.com/go-go-golems/fs-helpers/pkg/fsh/fs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const formatVersion = 1

// State is a mock store together with the working directory it was used with.
type State struct {
	WorkDir string
	Store   *fsh.Store
}

// NewState returns an empty state for workDir.
func NewState(workDir string) *State {
	return &State{WorkDir: workDir, Store: fsh.NewStore()}
}

type document struct {
	Version int         `yaml:"version"`
	WorkDir string      `yaml:"workdir"`
	Entries []entryYAML `yaml:"entries"`
}

type entryYAML struct {
	Path    string `yaml:"path"`
	Kind    string `yaml:"kind"`
	Mode    string `yaml:"mode"`
	Content string `yaml:"content,omitempty"`
}

// Encode renders state as YAML. Entries are written in path order.
func Encode(state *State) ([]byte, error) {
	doc := document{Version: formatVersion, WorkDir: state.WorkDir}
	for _, p := range state.Store.Paths() {
		e, _ := state.Store.Get(p)
		doc.Entries = append(doc.Entries, entryYAML{
			Path:    p,
			Kind:    e.Kind.String(),
			Mode:    "0" + strconv.FormatUint(uint64(e.Mode.Perm()), 8),
			Content: string(e.Content),
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal snapshot")
	}
	return data, nil
}

// Decode parses data produced by Encode.
func Decode(data []byte) (*State, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse snapshot")
	}
	if doc.Version != formatVersion {
		return nil, errors.Errorf("unsupported snapshot version %d", doc.Version)
	}

	state := NewState(doc.WorkDir)
	for _, ey := range doc.Entries {
		if !filepath.IsAbs(ey.Path) {
			return nil, errors.Errorf("snapshot entry %q is not absolute", ey.Path)
		}
		kind, err := fsh.ParseKind(ey.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "snapshot entry %s", ey.Path)
		}
		mode, err := strconv.ParseUint(ey.Mode, 8, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "snapshot entry %s has invalid mode %q", ey.Path, ey.Mode)
		}

		e := &fsh.Entry{Kind: kind, Mode: fs.FileMode(mode).Perm()}
		if kind == fsh.KindFile {
			e.Content = []byte(ey.Content)
		}
		state.Store.Set(filepath.Clean(ey.Path), e)
	}
	return state, nil
}
