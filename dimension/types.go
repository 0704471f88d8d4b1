package dimension

import "errors"

// Sentinel errors for table configuration. Callers branch with errors.Is.
var (
	// ErrGroupSpec indicates the grouping specification names more than
	// one variable.
	ErrGroupSpec = errors.New("dimension: grouping must name at most one variable")
	// ErrMissingVariable indicates a requested variable is absent from
	// the data source.
	ErrMissingVariable = errors.New("dimension: variable not in data source")
	// ErrTableTooLarge indicates the computed table size exceeds the
	// configured ceiling.
	ErrTableTooLarge = errors.New("dimension: table size exceeds ceiling")
	// ErrNoVariables indicates an analysis request without any variables.
	ErrNoVariables = errors.New("dimension: at least one analysis variable required")
)

// VarType is the classification of an analysis variable.
type VarType int

const (
	// Continuous variables are summarized by a numeric summary (mean,
	// median, ...) on a single row.
	Continuous VarType = iota
	// Categorical variables get one row per level with counts and
	// percentages.
	Categorical
)

func (t VarType) String() string {
	if t == Continuous {
		return "continuous"
	}
	return "categorical"
}

// DefaultClassifyThreshold is the distinct-value cutoff below which a
// numeric column is treated as categorical.
const DefaultClassifyThreshold = 10

// DefaultMaxCells caps row_count × col_count of a single table.
const DefaultMaxCells = 100000

// GroupSpec names the grouping variable, if any. More than one variable
// is a configuration error; an empty spec yields an ungrouped table.
type GroupSpec struct {
	Variables []string
}

// Groups returns a GroupSpec over the given variables.
func Groups(vars ...string) GroupSpec { return GroupSpec{Variables: vars} }

// Options carries every display and analysis switch of a table request.
// Zero value is not useful; start from DefaultOptions.
type Options struct {
	// Title is rendered above the table.
	Title string
	// ShowMissing adds a missing-count row per variable that has missing
	// values.
	ShowMissing bool
	// ShowPValue adds a p-value column (grouped tables only).
	ShowPValue bool
	// ShowTotals adds an Overall column next to the group columns.
	ShowTotals bool
	// StratifyBy names an optional stratification variable; the whole
	// row plan repeats once per stratum level.
	StratifyBy string
	// ContinuousTest names the test for continuous variables:
	// "t", "welch", "wilcoxon", "anova".
	ContinuousTest string
	// CategoricalTest names the test for categorical variables:
	// "chisq", "fisher".
	CategoricalTest string
	// NumericSummary names the registered summary for continuous
	// variables: "mean_sd", "median_iqr", "mean_ci", "geo_mean_sd",
	// or a caller-registered name.
	NumericSummary string
	// ClassifyThreshold is the distinct-value cutoff for Classify.
	ClassifyThreshold int
	// MaxCells is the table size ceiling (rows × cols).
	MaxCells int
	// Parallel enables concurrent evaluation of independent computation
	// cells. Results are identical to sequential evaluation.
	Parallel bool
	// ColumnNotes attaches a footnote to the named column label
	// (key = group level, "Overall", or "P-value").
	ColumnNotes map[string]string
	// GeneralNotes are unmarked footnotes appended after marked ones.
	GeneralNotes []string
}

// DefaultOptions returns the standard Table 1 configuration: mean (SD)
// summaries, t-test / chi-squared tests, grouped totals and p-values off.
func DefaultOptions() Options {
	return Options{
		ContinuousTest:    "t",
		CategoricalTest:   "chisq",
		NumericSummary:    "mean_sd",
		ClassifyThreshold: DefaultClassifyThreshold,
		MaxCells:          DefaultMaxCells,
	}
}

// RowKind tags the structural role of a table row.
type RowKind int

const (
	// RowVariableHeader is the first (for continuous: only) row of a
	// variable block; continuous summaries live here.
	RowVariableHeader RowKind = iota
	// RowCategory is one categorical level row with count (percent).
	RowCategory
	// RowMissing is the optional missing-count row.
	RowMissing
	// RowStratumHeader introduces one stratum's replica of the row plan.
	RowStratumHeader
)

// ColKind tags the structural role of a table column.
type ColKind int

const (
	// ColGroup is one grouping-variable level (or the single Overall
	// column of an ungrouped table).
	ColGroup ColKind = iota
	// ColTotal is the Overall column of a grouped table.
	ColTotal
	// ColPValue is the hypothesis-test column.
	ColPValue
)

// RowSpec describes one structural row of the plan.
type RowSpec struct {
	Kind     RowKind
	Variable string // analysis variable ("" for stratum headers)
	Level    string // category level (RowCategory only)
	Stratum  string // stratum level ("" when unstratified)
	Label    string // display label
	Marker   string // footnote marker ("" when unmarked)
}

// ColSpec describes one structural column of the plan.
type ColSpec struct {
	Kind   ColKind
	Level  string // group level (ColGroup only)
	Label  string // display label (without N decoration)
	Marker string // footnote marker ("" when unmarked)
}

// FootnoteKind orders footnotes: variable notes first, then column
// notes, then unmarked general notes. The ordering is fixed.
type FootnoteKind int

const (
	// FootnoteVariable attributes the hypothesis test used for a variable.
	FootnoteVariable FootnoteKind = iota
	// FootnoteColumn is a caller-supplied column annotation.
	FootnoteColumn
	// FootnoteGeneral is an unmarked trailing note.
	FootnoteGeneral
)

// Footnote is one entry of the table's footnote block.
type Footnote struct {
	Kind   FootnoteKind
	Marker string // sequential numeric marker; "" for general notes
	Text   string
}

// Plan is the immutable output of Analyze: complete row/column structure
// plus metadata the orchestrator needs to populate a table.
type Plan struct {
	RowCount int
	ColCount int
	Rows     []RowSpec
	Cols     []ColSpec

	GroupVar   string   // "" when ungrouped
	GroupLevel []string // group levels, sorted
	StratumVar string   // "" when unstratified
	Strata     []string // stratum levels, sorted

	VarTypes  map[string]VarType // per analysis variable
	Variables []string           // analysis variables in request order

	Footnotes []Footnote
}
