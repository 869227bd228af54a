// Package config loads a lowering run's configuration from a TOML project
// file, the same way the teacher compiler loads its module file (see
// src/mods/load.go, module.go) -- right down to reusing go-toml for the
// decode step.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// FileName is the conventional name of a project's lowering config, read
// from the project root the way the teacher reads its own module file.
const FileName = "dslx.toml"

// tomlFile mirrors FileName's on-disk shape.
type tomlFile struct {
	Project *tomlProject `toml:"project"`
}

type tomlProject struct {
	Name           string   `toml:"name"`
	EntryFunctions []string `toml:"entry-functions"`
	EmitPositions  bool     `toml:"emit-positions"`
	OutputPath     string   `toml:"output,omitempty"`
}

// Project is the validated, in-memory form of a project's lowering config.
type Project struct {
	// Name becomes the IR package's name.
	Name string

	// EntryFunctions lists the project's entry functions as read from the
	// project file. The driver does not read it: driver.ConvertModule
	// converts every non-parametric function and skips parametric ones
	// whether or not they are listed here.
	EntryFunctions []string

	EmitPositions bool
	OutputPath    string

	// Root is the directory FileName was loaded from.
	Root string
}

// Load reads and validates the project file in dir.
func Load(dir string) (*Project, error) {
	f, err := os.Open(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tf := &tomlFile{}
	if err := toml.Unmarshal(buf, tf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if tf.Project == nil {
		return nil, errors.New("missing [project] table")
	}
	if tf.Project.Name == "" {
		return nil, errors.New("project must specify a name")
	}

	return &Project{
		Name:           tf.Project.Name,
		EntryFunctions: tf.Project.EntryFunctions,
		EmitPositions:  tf.Project.EmitPositions,
		OutputPath:     tf.Project.OutputPath,
		Root:           dir,
	}, nil
}
