package stats

import (
	"fmt"

	"github.com/katalvlaran/tableone/dimension"
)

// Registry dispatches tests and numeric summaries by name. Built-ins
// are populated once by NewRegistry; caller additions are validated at
// registration, never per call. Pass one Registry per pipeline — there
// is no process-wide instance.
type Registry struct {
	continuous  map[string]ContinuousTestFunc
	categorical map[string]CategoricalTestFunc
	summaries   map[string]SummaryFunc
}

// NewRegistry returns a Registry loaded with the built-in tests and
// summaries.
func NewRegistry() *Registry {
	return &Registry{
		continuous: map[string]ContinuousTestFunc{
			"t":        tTest,
			"welch":    welchTest,
			"wilcoxon": rankTest,
			"anova":    anovaTest,
		},
		categorical: map[string]CategoricalTestFunc{
			"chisq":  chisqTest,
			"fisher": fisherTest,
		},
		summaries: map[string]SummaryFunc{
			"mean_sd":     meanSD,
			"median_iqr":  medianIQR,
			"mean_ci":     meanCI,
			"geo_mean_sd": geoMeanSD,
		},
	}
}

// Build resolves a test name against a variable type into a ready
// TestSpec. Unrecognized names fail with ErrUnknownTest, naming the
// offender.
func (r *Registry) Build(name string, vt dimension.VarType) (TestSpec, error) {
	spec := TestSpec{Name: name, AppliesTo: vt}
	switch vt {
	case dimension.Continuous:
		fn, ok := r.continuous[name]
		if !ok {
			return TestSpec{}, fmt.Errorf("%w: %q for continuous variables", ErrUnknownTest, name)
		}
		spec.continuous = fn
	case dimension.Categorical:
		fn, ok := r.categorical[name]
		if !ok {
			return TestSpec{}, fmt.Errorf("%w: %q for categorical variables", ErrUnknownTest, name)
		}
		spec.categorical = fn
	}
	return spec, nil
}

// Summary resolves a registered numeric summary by name.
func (r *Registry) Summary(name string) (SummaryFunc, error) {
	fn, ok := r.summaries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSummary, name)
	}
	return fn, nil
}

// RegisterSummary adds a caller-supplied numeric summary. The contract
// is validated here, once, not on every evaluation.
func (r *Registry) RegisterSummary(name string, fn SummaryFunc) error {
	if name == "" || fn == nil {
		return ErrBadRegistration
	}
	if _, dup := r.summaries[name]; dup {
		return fmt.Errorf("%w: summary %q", ErrDuplicateName, name)
	}
	r.summaries[name] = fn
	return nil
}

// RegisterContinuousTest adds a caller-supplied continuous test.
func (r *Registry) RegisterContinuousTest(name string, fn ContinuousTestFunc) error {
	if name == "" || fn == nil {
		return ErrBadRegistration
	}
	if _, dup := r.continuous[name]; dup {
		return fmt.Errorf("%w: continuous test %q", ErrDuplicateName, name)
	}
	r.continuous[name] = fn
	return nil
}

// RegisterCategoricalTest adds a caller-supplied categorical test.
func (r *Registry) RegisterCategoricalTest(name string, fn CategoricalTestFunc) error {
	if name == "" || fn == nil {
		return ErrBadRegistration
	}
	if _, dup := r.categorical[name]; dup {
		return fmt.Errorf("%w: categorical test %q", ErrDuplicateName, name)
	}
	r.categorical[name] = fn
	return nil
}
