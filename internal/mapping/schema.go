package mapping

// MappingFile is the root of a YAML mapping file.
type MappingFile struct {
	Version  string        `yaml:"version"`
	Mappings []TypeMapping `yaml:"mappings"`

	// Path is the file the mappings were loaded from, if any.
	Path string `yaml:"-"`
}

// TypeMapping declares one native type and its bridge type.
type TypeMapping struct {
	Native string         `yaml:"native"`
	Bridge string         `yaml:"bridge"`
	Fields []FieldMapping `yaml:"fields,omitempty"`

	// Line is the YAML line of the entry, 0 when unknown.
	Line int `yaml:"-"`
}

// FieldMapping holds override expressions for one native field.
type FieldMapping struct {
	Name string `yaml:"name"`
	From string `yaml:"from,omitempty"`
	Into string `yaml:"into,omitempty"`

	Line int `yaml:"-"`
}

// Label names the mapping for diagnostics.
func (tm *TypeMapping) Label() string {
	return tm.Native + "<->" + tm.Bridge
}

// Field returns the entry for a native field name.
func (tm *TypeMapping) Field(name string) (*FieldMapping, bool) {
	for i := range tm.Fields {
		if tm.Fields[i].Name == name {
			return &tm.Fields[i], true
		}
	}

	return nil, false
}
