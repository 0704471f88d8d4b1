package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// themeFile is the YAML document shape: a list of theme records. Fields
// omitted in the file inherit from the default theme.
type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

// LoadFile parses a YAML theme file and registers every record it
// contains. Validation happens per record at registration, so one bad
// theme aborts the load with a named error.
func (r *Registry) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("theme: reading %s: %w", path, err)
	}
	return r.Load(raw)
}

// Load registers themes from YAML bytes. See LoadFile.
func (r *Registry) Load(raw []byte) error {
	var f themeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("theme: parsing YAML: %w", err)
	}
	for _, t := range f.Themes {
		filled := withDefaults(t)
		if err := r.Register(filled); err != nil {
			return fmt.Errorf("theme: loading %q: %w", t.Name, err)
		}
	}
	return nil
}

// withDefaults fills omitted fields from the default theme. Precision 0
// is a legal explicit value, so only string fields inherit.
func withDefaults(t Theme) Theme {
	def := Default()
	if t.Indent == "" {
		t.Indent = def.Indent
	}
	if t.Border == "" {
		t.Border = def.Border
	}
	if t.MissingLabel == "" {
		t.MissingLabel = def.MissingLabel
	}
	if t.ErrorMarker == "" {
		t.ErrorMarker = def.ErrorMarker
	}
	return t
}
