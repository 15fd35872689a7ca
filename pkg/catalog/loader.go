package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading recognizers from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in recognizers
}

// NewLoader creates a loader with built-in recognizers from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
// The filesystem must hold its definitions under a "recognizers" directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// Load parses every recognizer in a YAML document, in document order.
// Returns error if YAML is invalid or no recognizers are present.
func (l *Loader) Load(data []byte) ([]*types.Recognizer, error) {
	var yamlFile yamlRecognizersFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Recognizers) == 0 {
		return nil, fmt.Errorf("no recognizers found in YAML")
	}

	recognizers := make([]*types.Recognizer, 0, len(yamlFile.Recognizers))
	for _, yr := range yamlFile.Recognizers {
		recognizers = append(recognizers, convertYAMLRecognizer(yr))
	}
	return recognizers, nil
}

// LoadFile loads recognizers from a YAML file path.
func (l *Loader) LoadFile(path string) ([]*types.Recognizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Load(data)
}

// LoadBuiltin loads all recognizers from the loader's filesystem, walking
// the "recognizers" directory in lexical order.
func (l *Loader) LoadBuiltin() ([]*types.Recognizer, error) {
	var recognizers []*types.Recognizer

	err := fs.WalkDir(l.fs, "recognizers", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var yamlFile yamlRecognizersFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, yr := range yamlFile.Recognizers {
			recognizers = append(recognizers, convertYAMLRecognizer(yr))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return recognizers, nil
}

// convertYAMLRecognizer converts yamlRecognizer to types.Recognizer.
func convertYAMLRecognizer(yr yamlRecognizer) *types.Recognizer {
	return &types.Recognizer{
		ID:               yr.ID,
		Name:             yr.Name,
		Detect:           yr.Detect,
		Emit:             yr.Emit,
		Priority:         yr.Priority,
		Description:      yr.Description,
		Examples:         yr.Examples,
		NegativeExamples: yr.NegativeExamples,
		Keywords:         yr.Keywords,
		Categories:       yr.Categories,
	}
}
