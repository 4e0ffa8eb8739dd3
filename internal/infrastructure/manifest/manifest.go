// Package manifest loads the pipeline manifest file: a YAML document that
// declares, per plugin kind, which catalogs discovery should scan, plus
// class and lister exclusions. It is the file-based discovery source the
// registry holder watches for changes.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pipekit.dev/cli/internal/core/discovery"
)

// Manifest is the parsed pipeline manifest.
type Manifest struct {
	// Kinds maps kind names to catalog name lists. The DEFAULT placeholder
	// is legal and expands against the strategy defaults at discovery time.
	Kinds map[string][]string `yaml:"kinds"`

	// ExcludedClasses are fully-qualified type IDs dropped after discovery.
	ExcludedClasses []string `yaml:"excluded_classes"`

	// ExcludedListers are lister names that are never invoked.
	ExcludedListers []string `yaml:"excluded_listers"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	for kind, catalogs := range m.Kinds {
		if len(catalogs) == 0 {
			return nil, fmt.Errorf("parse manifest: kind %q has no catalogs", kind)
		}
	}
	return &m, nil
}

// Lister adapts the manifest's kind table into a discovery class lister, so
// a manifest file acts exactly like a lister function defined in code.
func (m *Manifest) Lister() discovery.Lister {
	return func() map[string][]string {
		out := make(map[string][]string, len(m.Kinds))
		for kind, catalogs := range m.Kinds {
			out[kind] = append([]string(nil), catalogs...)
		}
		return out
	}
}
