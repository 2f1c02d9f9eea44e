package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the schema version written by Marshal.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	mf.Path = path

	return mf, nil
}

// Parse parses YAML data into a MappingFile, recording the line of every
// mapping and field entry.
func Parse(data []byte) (*MappingFile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	var mf MappingFile

	if len(root.Content) > 0 {
		if err := root.Content[0].Decode(&mf); err != nil {
			return nil, fmt.Errorf("failed to decode mapping YAML: %w", err)
		}

		recordLines(root.Content[0], &mf)
	}

	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	if mf.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported mapping version %q", mf.Version)
	}

	return &mf, nil
}

func recordLines(doc *yaml.Node, mf *MappingFile) {
	seq := valueOf(doc, "mappings")
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return
	}

	for i, item := range seq.Content {
		if i >= len(mf.Mappings) {
			return
		}

		tm := &mf.Mappings[i]
		tm.Line = item.Line

		fields := valueOf(item, "fields")
		if fields == nil || fields.Kind != yaml.SequenceNode {
			continue
		}

		for j, f := range fields.Content {
			if j < len(tm.Fields) {
				tm.Fields[j].Line = f.Line
			}
		}
	}
}

// valueOf returns the value node of key in a mapping node.
func valueOf(m *yaml.Node, key string) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}

	return nil
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	if mf.Version == "" {
		mf.Version = CurrentVersion
	}

	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
