package render

import (
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/theme"
)

// textEmitter buffers the whole table so column widths can be computed
// before anything is written; end() performs the actual assembly.
type textEmitter struct {
	th    theme.Theme
	title string

	header []string
	rows   [][]string // rows[i][0] is the label column
	kinds  []dimension.RowKind
	notes  []dimension.Footnote
}

func newTextEmitter(th theme.Theme) *textEmitter {
	return &textEmitter{th: th}
}

func (e *textEmitter) begin(_ *strings.Builder, t Table, _ theme.Theme) {
	e.title = t.Title()
}

func (e *textEmitter) headerRow(_ *strings.Builder, labels []string) {
	e.header = labels
}

func (e *textEmitter) bodyRow(_ *strings.Builder, kind dimension.RowKind, label string, cells []string) {
	row := append([]string{label}, cells...)
	e.rows = append(e.rows, row)
	e.kinds = append(e.kinds, kind)
}

func (e *textEmitter) footnotes(_ *strings.Builder, notes []dimension.Footnote) {
	e.notes = notes
}

func (e *textEmitter) escape(s string) string { return s } // plain text passes through

func (e *textEmitter) sup(marker string) string { return " [" + marker + "]" }

func (e *textEmitter) ruleChar() string {
	switch e.th.Border {
	case theme.BorderDouble:
		return "="
	case theme.BorderNone:
		return ""
	}
	return "-"
}

const colGap = "  "

func (e *textEmitter) end(w *strings.Builder) {
	widths := make([]int, len(e.header))
	measure := func(row []string) {
		for i, s := range row {
			if n := utf8.RuneCountInString(s); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(e.header)
	for i, row := range e.rows {
		if e.kinds[i] == dimension.RowStratumHeader {
			continue // spans the full width, does not drive columns
		}
		measure(row)
	}
	total := len(colGap) * (len(widths) - 1)
	for _, wd := range widths {
		total += wd
	}

	rule := ""
	if rc := e.ruleChar(); rc != "" {
		rule = strings.Repeat(rc, total) + "\n"
	}

	if e.title != "" {
		w.WriteString(e.title + "\n")
	}
	w.WriteString(rule)
	e.writeRow(w, widths, e.header)
	w.WriteString(rule)
	for i, row := range e.rows {
		if e.kinds[i] == dimension.RowStratumHeader {
			w.WriteString(row[0] + "\n")
			if sep := e.th.SeparatorMarker; sep != "" {
				w.WriteString(fillRule(sep, total) + "\n")
			} else if rule != "" {
				w.WriteString(rule)
			}
			continue
		}
		e.writeRow(w, widths, row)
	}
	w.WriteString(rule)
	for _, n := range e.notes {
		if n.Marker != "" {
			w.WriteString("[" + n.Marker + "] ")
		}
		w.WriteString(n.Text + "\n")
	}
}

// fillRule repeats marker to exactly width display runes.
func fillRule(marker string, width int) string {
	s := strings.Repeat(marker, width)
	if r := []rune(s); len(r) > width {
		s = string(r[:width])
	}
	return s
}

// writeRow pads the label column left-aligned and value columns
// right-aligned, trimming trailing spaces. Widths count runes, not
// bytes, so non-ASCII labels stay aligned.
func (e *textEmitter) writeRow(w *strings.Builder, widths []int, row []string) {
	var line strings.Builder
	for i, s := range row {
		if i > 0 {
			line.WriteString(colGap)
		}
		pad := widths[i] - utf8.RuneCountInString(s)
		if i == 0 {
			line.WriteString(s + strings.Repeat(" ", pad))
		} else {
			line.WriteString(strings.Repeat(" ", pad) + s)
		}
	}
	w.WriteString(strings.TrimRight(line.String(), " ") + "\n")
}
