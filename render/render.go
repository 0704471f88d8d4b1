package render

import (
	"errors"
	"strings"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/grid"
	"github.com/katalvlaran/tableone/theme"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("render: unknown format")

// Format selects the output target.
type Format int

const (
	// Text renders aligned plain-text columns.
	Text Format = iota
	// HTML renders structured markup.
	HTML
	// LaTeX renders typesetting source.
	LaTeX
)

// ParseFormat maps a format name ("text", "html", "latex") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return Text, nil
	case "html":
		return HTML, nil
	case "latex", "tex":
		return LaTeX, nil
	}
	return 0, ErrUnknownFormat
}

// Table is the read-only view a renderer walks. *blueprint.Blueprint
// implements it; renderers must not mutate the underlying table, and
// the interface offers them no way to.
type Table interface {
	Title() string
	RowCount() int
	ColCount() int
	RowLabel(r int) string // 1-based
	RowMarker(r int) string
	RowKind(r int) dimension.RowKind
	ColLabel(c int) string
	ColMarker(c int) string
	// CellText resolves the cell at (r, c) at the given decimal
	// precision; ok is false for unpopulated addresses.
	CellText(r, c, precision int) (string, bool)
	Footnotes() []dimension.Footnote
}

// emitter is the per-format hook set. The shared pipeline drives it;
// implementations only decide textual shape and escaping.
type emitter interface {
	begin(w *strings.Builder, t Table, th theme.Theme)
	headerRow(w *strings.Builder, labels []string)
	bodyRow(w *strings.Builder, kind dimension.RowKind, label string, cells []string)
	footnotes(w *strings.Builder, notes []dimension.Footnote)
	end(w *strings.Builder)
	escape(s string) string
	// sup renders a footnote marker as a superscript in this format.
	sup(marker string) string
}

// Render walks the table once and produces output in the requested
// format. The per-table evaluation cache inside the Table makes
// repeated calls across formats cheap.
func Render(t Table, f Format, th theme.Theme) (string, error) {
	var e emitter
	switch f {
	case Text:
		e = newTextEmitter(th)
	case HTML:
		e = &htmlEmitter{th: th}
	case LaTeX:
		e = &latexEmitter{th: th}
	default:
		return "", ErrUnknownFormat
	}

	var w strings.Builder

	// Title + setup.
	e.begin(&w, t, th)

	// Header row: column labels with footnote markers.
	labels := make([]string, t.ColCount()+1)
	labels[0] = "" // row-label column
	for c := 1; c <= t.ColCount(); c++ {
		labels[c] = decorate(e.escape(t.ColLabel(c)), t.ColMarker(c), e)
	}
	e.headerRow(&w, labels)

	// Body rows. Cell strings are resolved by the table (cache-aware)
	// and escaped exactly once, here, at emission.
	for r := 1; r <= t.RowCount(); r++ {
		kind := t.RowKind(r)
		raw := t.RowLabel(r)
		if kind == dimension.RowMissing && th.MissingLabel != "" {
			raw = th.MissingLabel
		}
		label := indentLabel(e.escape(raw), kind, th)
		label = decorate(label, t.RowMarker(r), e)
		cells := make([]string, t.ColCount())
		for c := 1; c <= t.ColCount(); c++ {
			text, ok := t.CellText(r, c, th.Precision)
			if !ok {
				cells[c-1] = ""
				continue
			}
			if text == grid.ErrorText && th.ErrorMarker != "" {
				text = th.ErrorMarker
			}
			cells[c-1] = e.escape(text)
		}
		e.bodyRow(&w, kind, label, cells)
	}

	// Footnotes + cleanup.
	e.footnotes(&w, t.Footnotes())
	e.end(&w)
	return w.String(), nil
}

// decorate appends a footnote marker to an already-escaped label.
func decorate(label, marker string, e emitter) string {
	if marker == "" {
		return label
	}
	return label + e.sup(marker)
}

// indentLabel applies the theme indent to category and missing rows.
func indentLabel(label string, kind dimension.RowKind, th theme.Theme) string {
	switch kind {
	case dimension.RowCategory, dimension.RowMissing:
		return th.Indent + label
	}
	return label
}
