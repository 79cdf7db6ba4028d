package mapping

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"datamapper/internal/common"
)

// SnapshotFile is the root of a YAML mapping snapshot.
type SnapshotFile struct {
	// Version of the snapshot schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Document is the target document reference, "kind:id".
	Document string `yaml:"document"`

	// Namespaces maps prefixes to namespace URIs.
	Namespaces map[string]string `yaml:"namespaces,omitempty"`

	// Items are the top-level mapping items.
	Items []ItemSpec `yaml:"items,omitempty"`
}

// ItemSpec is the serialized form of one mapping item.
type ItemSpec struct {
	Kind       string       `yaml:"kind"`
	ID         string       `yaml:"id,omitempty"`
	Field      string       `yaml:"field,omitempty"`
	Expression string       `yaml:"expression,omitempty"`
	Sources    []SourceSpec `yaml:"sources,omitempty"`
	ValueType  string       `yaml:"valueType,omitempty"`
	Children   []ItemSpec   `yaml:"children,omitempty"`
}

// SourceSpec is the serialized form of a SourceRef.
// YAML formats supported:
//   - Shorthand: "param:Account/Address/Street"
//   - Full: {document: param:Account, path: Address/Street}
type SourceSpec struct {
	Document string `yaml:"document"`
	Path     string `yaml:"path,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for SourceSpec.
func (s *SourceSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str == "" {
			return errors.New("empty source reference")
		}

		doc, path, _ := strings.Cut(str, common.PathSeparator)
		s.Document = doc
		s.Path = path

		return nil

	case yaml.MappingNode:
		// alias type avoids recursing into this method
		type plain SourceSpec

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*s = SourceSpec(p)

		return nil

	default:
		return fmt.Errorf("expected string or mapping for source, got %v", node.Kind)
	}
}

// MarshalYAML writes the shorthand form.
func (s SourceSpec) MarshalYAML() (any, error) {
	if s.Path == "" {
		return s.Document, nil
	}

	return s.Document + common.PathSeparator + s.Path, nil
}
