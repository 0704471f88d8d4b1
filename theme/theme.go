package theme

import (
	"errors"
	"fmt"
)

// Sentinel errors for theme handling.
var (
	// ErrUnknownTheme indicates a name with no registered theme.
	ErrUnknownTheme = errors.New("theme: unknown theme")
	// ErrInvalidTheme indicates a theme record failing validation.
	ErrInvalidTheme = errors.New("theme: invalid theme record")
	// ErrDuplicateTheme indicates the name is already registered.
	ErrDuplicateTheme = errors.New("theme: name already registered")
)

// BorderStyle selects the horizontal rule character set of the text
// renderer; markup renderers ignore it.
type BorderStyle string

const (
	// BorderSingle draws rules with '-'.
	BorderSingle BorderStyle = "single"
	// BorderDouble draws rules with '='.
	BorderDouble BorderStyle = "double"
	// BorderNone draws no rules.
	BorderNone BorderStyle = "none"
)

// Theme is one opaque styling record.
type Theme struct {
	Name string `yaml:"name"`
	// Precision is the decimal precision of computed statistics.
	Precision int `yaml:"precision"`
	// Indent prefixes category and missing-count row labels.
	Indent string `yaml:"indent"`
	// Border selects the text renderer's rule style.
	Border BorderStyle `yaml:"border"`
	// MissingLabel replaces the planned label of missing-count rows;
	// empty keeps the plan's label.
	MissingLabel string `yaml:"missing_label"`
	// ErrorMarker replaces a cell whose computation failed.
	ErrorMarker string `yaml:"error_marker"`
	// SeparatorMarker draws the text renderer's stratum-break rule;
	// empty falls back to the border rule. Markup renderers ignore it,
	// as they do Border.
	SeparatorMarker string `yaml:"separator_marker"`
}

// Default returns the standard theme without touching a registry.
func Default() Theme {
	return Theme{
		Name:            "default",
		Precision:       1,
		Indent:          "  ",
		Border:          BorderSingle,
		MissingLabel:    "Missing",
		ErrorMarker:     "[error]",
		SeparatorMarker: "",
	}
}

func validate(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTheme)
	}
	if t.Precision < 0 || t.Precision > 10 {
		return fmt.Errorf("%w: precision %d out of [0,10]", ErrInvalidTheme, t.Precision)
	}
	switch t.Border {
	case BorderSingle, BorderDouble, BorderNone:
	default:
		return fmt.Errorf("%w: border %q", ErrInvalidTheme, t.Border)
	}
	return nil
}

// Registry maps theme names to records. Built-ins are installed once at
// construction; pass one Registry per pipeline.
type Registry struct {
	themes map[string]Theme
}

// NewRegistry returns a Registry holding the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]Theme)}
	def := Default()
	compact := def
	compact.Name = "compact"
	compact.Indent = " "
	compact.Border = BorderNone
	journal := def
	journal.Name = "journal"
	journal.Precision = 2
	journal.Border = BorderDouble
	journal.ErrorMarker = "--"
	journal.SeparatorMarker = "-"
	for _, t := range []Theme{def, compact, journal} {
		r.themes[t.Name] = t
	}
	return r
}

// Lookup resolves a theme by name.
func (r *Registry) Lookup(name string) (Theme, error) {
	t, ok := r.themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Register validates and installs a custom theme. Built-in names cannot
// be overwritten.
func (r *Registry) Register(t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	if _, dup := r.themes[t.Name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateTheme, t.Name)
	}
	r.themes[t.Name] = t
	return nil
}

// Names lists registered theme names (unordered).
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	return names
}
