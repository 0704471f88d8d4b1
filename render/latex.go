package render

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tableone/dimension"
	"github.com/katalvlaran/tableone/theme"
)

// latexEmitter writes tabular typesetting source incrementally.
type latexEmitter struct {
	th    theme.Theme
	ncols int
}

func (e *latexEmitter) begin(w *strings.Builder, t Table, _ theme.Theme) {
	e.ncols = t.ColCount() + 1
	w.WriteString("\\begin{table}[ht]\n\\centering\n")
	if t.Title() != "" {
		w.WriteString("\\caption{" + e.escape(t.Title()) + "}\n")
	}
	w.WriteString("\\begin{tabular}{l" + strings.Repeat("r", t.ColCount()) + "}\n\\hline\n")
}

func (e *latexEmitter) headerRow(w *strings.Builder, labels []string) {
	w.WriteString(strings.Join(labels, " & ") + " \\\\\n\\hline\n")
}

func (e *latexEmitter) bodyRow(w *strings.Builder, kind dimension.RowKind, label string, cells []string) {
	if kind == dimension.RowStratumHeader {
		fmt.Fprintf(w, "\\multicolumn{%d}{l}{\\textbf{%s}} \\\\\n\\hline\n", e.ncols, label)
		return
	}
	w.WriteString(label)
	for _, c := range cells {
		w.WriteString(" & " + c)
	}
	w.WriteString(" \\\\\n")
}

func (e *latexEmitter) footnotes(w *strings.Builder, notes []dimension.Footnote) {
	w.WriteString("\\hline\n")
	for _, n := range notes {
		w.WriteString("\\multicolumn{" + fmt.Sprint(e.ncols) + "}{l}{\\footnotesize ")
		if n.Marker != "" {
			w.WriteString("$^{" + n.Marker + "}$ ")
		}
		w.WriteString(e.escape(n.Text) + "} \\\\\n")
	}
}

func (e *latexEmitter) end(w *strings.Builder) {
	w.WriteString("\\end{tabular}\n\\end{table}\n")
}

var latexReplacer = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func (e *latexEmitter) escape(s string) string { return latexReplacer.Replace(s) }

func (e *latexEmitter) sup(marker string) string { return "$^{" + marker + "}$" }
