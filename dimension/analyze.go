package dimension

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/tableone/dataset"
)

// Display names for the built-in tests, used in footnote attribution.
// Unknown (caller-registered) test names fall back to the raw name.
var testLabels = map[string]string{
	"t":        "Two Sample t-test",
	"welch":    "Welch two sample t-test",
	"wilcoxon": "Wilcoxon rank-sum test",
	"anova":    "One-way ANOVA",
	"chisq":    "Pearson chi-squared test (Fisher exact when expected counts fall below 5)",
	"fisher":   "Fisher exact test",
}

// Analyze computes the table's row/column structure from the request.
//
// Steps:
//  1. Validate: at most one grouping variable; every referenced variable
//     (analysis, grouping, stratification) present in the data source.
//  2. Classify analysis variables and enumerate group/stratum levels.
//  3. Build the per-stratum row plan; replicate it per stratum level,
//     each preceded by a stratum header row.
//  4. Build the column plan: group levels, optional Total, optional
//     p-value (grouped tables only).
//  5. Assign footnotes: variable test attributions, then column notes,
//     then unmarked general notes.
//  6. Enforce the size ceiling.
//
// Analyze reads the data source but never mutates it; the returned Plan
// is immutable thereafter.
func Analyze(vars []string, group GroupSpec, v dataset.View, opts Options) (*Plan, error) {
	// Stage 1: validation, fail fast naming the offending value.
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	if len(group.Variables) > 1 {
		return nil, fmt.Errorf("%w: got %d (%v)", ErrGroupSpec, len(group.Variables), group.Variables)
	}
	groupVar := ""
	if len(group.Variables) == 1 {
		groupVar = group.Variables[0]
	}
	for _, name := range vars {
		if !v.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrMissingVariable, name)
		}
	}
	if groupVar != "" && !v.Has(groupVar) {
		return nil, fmt.Errorf("%w: grouping variable %q", ErrMissingVariable, groupVar)
	}
	if opts.StratifyBy != "" && !v.Has(opts.StratifyBy) {
		return nil, fmt.Errorf("%w: stratification variable %q", ErrMissingVariable, opts.StratifyBy)
	}

	plan := &Plan{
		GroupVar:   groupVar,
		StratumVar: opts.StratifyBy,
		Variables:  append([]string(nil), vars...),
		VarTypes:   make(map[string]VarType, len(vars)),
	}

	// Stage 2: classification and level enumeration.
	for _, name := range vars {
		col, err := columnOf(v, name)
		if err != nil {
			return nil, err
		}
		plan.VarTypes[name] = Classify(col, opts.ClassifyThreshold)
	}
	if groupVar != "" {
		plan.GroupLevel = v.Levels(groupVar)
	}
	if plan.StratumVar != "" {
		plan.Strata = v.Levels(plan.StratumVar)
	}

	// Stage 3: row plan, replicated per stratum.
	strata := []string{""}
	if len(plan.Strata) > 0 {
		strata = plan.Strata
	}
	for _, stratum := range strata {
		sv := v
		if stratum != "" {
			plan.Rows = append(plan.Rows, RowSpec{
				Kind:    RowStratumHeader,
				Stratum: stratum,
				Label:   fmt.Sprintf("%s: %s", plan.StratumVar, stratum),
			})
			sv = v.Where(plan.StratumVar, stratum)
		}
		for _, name := range vars {
			plan.Rows = append(plan.Rows, RowSpec{
				Kind:     RowVariableHeader,
				Variable: name,
				Stratum:  stratum,
				Label:    name,
			})
			if plan.VarTypes[name] == Categorical {
				for _, level := range v.Levels(name) { // full-data levels keep strata congruent
					plan.Rows = append(plan.Rows, RowSpec{
						Kind:     RowCategory,
						Variable: name,
						Level:    level,
						Stratum:  stratum,
						Label:    level,
					})
				}
			}
			if opts.ShowMissing && sv.MissingCount(name) > 0 {
				plan.Rows = append(plan.Rows, RowSpec{
					Kind:     RowMissing,
					Variable: name,
					Stratum:  stratum,
					Label:    "Missing",
				})
			}
		}
	}
	plan.RowCount = len(plan.Rows)

	// Stage 4: column plan.
	if groupVar == "" {
		plan.Cols = append(plan.Cols, ColSpec{Kind: ColGroup, Label: "Overall"})
	} else {
		for _, level := range plan.GroupLevel {
			plan.Cols = append(plan.Cols, ColSpec{Kind: ColGroup, Level: level, Label: level})
		}
		if opts.ShowTotals {
			plan.Cols = append(plan.Cols, ColSpec{Kind: ColTotal, Label: "Overall"})
		}
		if opts.ShowPValue {
			plan.Cols = append(plan.Cols, ColSpec{Kind: ColPValue, Label: "P-value"})
		}
	}
	plan.ColCount = len(plan.Cols)

	// Stage 5: footnotes, fixed precedence.
	assignFootnotes(plan, opts)

	// Stage 6: size ceiling.
	maxCells := opts.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}
	if plan.RowCount*plan.ColCount > maxCells {
		return nil, fmt.Errorf("%w: %d×%d = %d cells, ceiling %d",
			ErrTableTooLarge, plan.RowCount, plan.ColCount, plan.RowCount*plan.ColCount, maxCells)
	}
	return plan, nil
}

// columnOf adapts the view's Values accessor back into a typed Column
// for Classify. Missing columns were validated above, so err is a bug.
func columnOf(v dataset.View, name string) (dataset.Column, error) {
	vals, err := v.Values(name)
	if err != nil {
		return dataset.Column{}, fmt.Errorf("%w: %q", ErrMissingVariable, name)
	}
	numeric := len(vals) > 0
	for _, val := range vals {
		if !val.Missing && !val.Numeric {
			numeric = false
			break
		}
	}
	return dataset.Column{Name: name, Numeric: numeric, Values: vals}, nil
}

// assignFootnotes numbers footnotes in fixed precedence: variable test
// attributions (in variable order, one marker per distinct test), then
// column notes (in column order), then unmarked general notes.
func assignFootnotes(plan *Plan, opts Options) {
	next := 1
	hasPValue := false
	for _, c := range plan.Cols {
		if c.Kind == ColPValue {
			hasPValue = true
		}
	}

	if hasPValue {
		markerOf := make(map[string]string) // test name -> marker
		for _, name := range plan.Variables {
			test := opts.ContinuousTest
			if plan.VarTypes[name] == Categorical {
				test = opts.CategoricalTest
			}
			marker, ok := markerOf[test]
			if !ok {
				marker = strconv.Itoa(next)
				next++
				markerOf[test] = marker
				label, known := testLabels[test]
				if !known {
					label = test
				}
				plan.Footnotes = append(plan.Footnotes, Footnote{
					Kind:   FootnoteVariable,
					Marker: marker,
					Text:   "P-value from " + label + ".",
				})
			}
			for i := range plan.Rows {
				if plan.Rows[i].Kind == RowVariableHeader && plan.Rows[i].Variable == name {
					plan.Rows[i].Marker = marker
				}
			}
		}
	}

	for i := range plan.Cols {
		note, ok := opts.ColumnNotes[plan.Cols[i].Label]
		if !ok {
			continue
		}
		marker := strconv.Itoa(next)
		next++
		plan.Cols[i].Marker = marker
		plan.Footnotes = append(plan.Footnotes, Footnote{
			Kind:   FootnoteColumn,
			Marker: marker,
			Text:   note,
		})
	}

	for _, note := range opts.GeneralNotes {
		plan.Footnotes = append(plan.Footnotes, Footnote{
			Kind: FootnoteGeneral,
			Text: note,
		})
	}
}
