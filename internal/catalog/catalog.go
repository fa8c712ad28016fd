// Package catalog holds the reference data a lift modernization project is
// classified with: modification types, applicable norms, legalization
// processes, and the option lists offered for technical fields.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies one of the reference catalogs. The set is closed.
type Kind int

const (
	ModificationTypes Kind = iota
	ApplicableNorms
	LegalizationProcesses
)

// Kinds lists every catalog in display order.
var Kinds = []Kind{ModificationTypes, ApplicableNorms, LegalizationProcesses}

func (k Kind) String() string {
	switch k {
	case ModificationTypes:
		return "modification_types"
	case ApplicableNorms:
		return "applicable_norms"
	case LegalizationProcesses:
		return "legalization_processes"
	default:
		return fmt.Sprintf("catalog(%d)", int(k))
	}
}

// Entry is a code/label pair.
type Entry struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}

// Data is the full reference data set.
type Data struct {
	ModificationTypes     []Entry             `yaml:"modification_types" json:"modification_types"`
	ApplicableNorms       []Entry             `yaml:"applicable_norms" json:"applicable_norms"`
	LegalizationProcesses []Entry             `yaml:"legalization_processes" json:"legalization_processes"`
	TechnicalSpecs        map[string][]string `yaml:"technical_specs" json:"technical_specs"`
	Certificates          map[string][]string `yaml:"certificates" json:"certificates"`
}

// Entries returns the entries of one catalog.
func (d *Data) Entries(k Kind) []Entry {
	switch k {
	case ModificationTypes:
		return d.ModificationTypes
	case ApplicableNorms:
		return d.ApplicableNorms
	case LegalizationProcesses:
		return d.LegalizationProcesses
	default:
		return nil
	}
}

//go:embed catalog.yaml
var defaultYAML []byte

// Default returns the reference data shipped with the binary.
func Default() (*Data, error) {
	return Parse(defaultYAML)
}

// Parse decodes reference data from YAML and checks codes are unique per catalog.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, k := range Kinds {
		seen := make(map[string]struct{})
		for _, e := range d.Entries(k) {
			if e.Code == "" {
				return nil, fmt.Errorf("%s: entry with empty code", k)
			}
			if _, dup := seen[e.Code]; dup {
				return nil, fmt.Errorf("%s: duplicate code %q", k, e.Code)
			}
			seen[e.Code] = struct{}{}
		}
	}
	return &d, nil
}
