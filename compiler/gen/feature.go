package gen

import (
	"os"
	"path/filepath"
)

// SnapshotFile is the name of the file written by FeatureSnapshot.
const SnapshotFile = "xsdgen.snapshot"

var (
	// FeatureSnapshot stores a msgpack snapshot of the resolved graph next to
	// the generated files, to diff schema changes between runs.
	FeatureSnapshot = Feature{
		Name:        "snapshot",
		Stage:       Experimental,
		Default:     false,
		Description: "Snapshot stores the resolved type graph next to the generated code",
		cleanup: func(c *Config) error {
			return remove(c.Target, SnapshotFile)
		},
	}

	// FeatureFormat runs goimports over every generated file.
	FeatureFormat = Feature{
		Name:        "format",
		Stage:       Stable,
		Default:     false,
		Description: "Format post-processes generated files with goimports",
	}

	// FeatureStringer emits String methods on enum kinds and unit enums.
	FeatureStringer = Feature{
		Name:        "stringer",
		Stage:       Stable,
		Default:     true,
		Description: "Stringer emits String methods on enum kinds and on enums whose cases are all literals",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureSnapshot,
		FeatureFormat,
		FeatureStringer,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or go away.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and not expected to change.
	Beta

	// Stable features have been in use for a while.
	Stable
)

// A Feature of the codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string

	// cleanup removes the output of a previous run when the feature is
	// disabled.
	cleanup func(*Config) error
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// remove file (if exists).
func remove(dir, file string) error {
	if err := os.Remove(filepath.Join(dir, file)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
