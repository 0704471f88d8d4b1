package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/theme"
)

// htmlEmitter writes structured markup incrementally; no buffering is
// needed because HTML tables do not require pre-computed widths.
type htmlEmitter struct {
	th    theme.Theme
	ncols int
}

func (e *htmlEmitter) begin(w *strings.Builder, t Table, _ theme.Theme) {
	e.ncols = t.ColCount() + 1
	w.WriteString("<table class=\"tableone\">\n")
	if t.Title() != "" {
		w.WriteString("  <caption>" + html.EscapeString(t.Title()) + "</caption>\n")
	}
}

func (e *htmlEmitter) headerRow(w *strings.Builder, labels []string) {
	w.WriteString("  <thead>\n    <tr>")
	for _, l := range labels {
		w.WriteString("<th>" + l + "</th>")
	}
	w.WriteString("</tr>\n  </thead>\n  <tbody>\n")
}

func (e *htmlEmitter) bodyRow(w *strings.Builder, kind dimension.RowKind, label string, cells []string) {
	if kind == dimension.RowStratumHeader {
		fmt.Fprintf(w, "    <tr class=\"stratum\"><th colspan=\"%d\">%s</th></tr>\n", e.ncols, label)
		return
	}
	w.WriteString("    <tr><td>" + label + "</td>")
	for _, c := range cells {
		w.WriteString("<td>" + c + "</td>")
	}
	w.WriteString("</tr>\n")
}

func (e *htmlEmitter) footnotes(w *strings.Builder, notes []dimension.Footnote) {
	w.WriteString("  </tbody>\n")
	if len(notes) == 0 {
		return
	}
	w.WriteString("  <tfoot>\n")
	for _, n := range notes {
		w.WriteString("    <tr><td colspan=\"" + fmt.Sprint(e.ncols) + "\">")
		if n.Marker != "" {
			w.WriteString("<sup>" + html.EscapeString(n.Marker) + "</sup> ")
		}
		w.WriteString(html.EscapeString(n.Text) + "</td></tr>\n")
	}
	w.WriteString("  </tfoot>\n")
}

func (e *htmlEmitter) end(w *strings.Builder) {
	w.WriteString("</table>\n")
}

func (e *htmlEmitter) escape(s string) string { return html.EscapeString(s) }

func (e *htmlEmitter) sup(marker string) string {
	return "<sup>" + html.EscapeString(marker) + "</sup>"
}
