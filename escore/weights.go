// Package escore combines per-trait summary statistics into a composite,
// inflation-weighted score per variant. Traits whose mean chi-square sits
// further above the null expectation of 1 carry more weight, and each common
// variant's score is the weighted sum of -log10(P) across traits.
package escore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/YangZhang-YZU/Goose-Plumage-Growth/sumstats"
)

// DegenerateWeightsError reports that no trait shows test-statistic inflation
// above the null expectation, leaving every weight numerator at zero. Falling
// back to, say, uniform weights would change the meaning of the scores, so
// the pipeline stops instead.
type DegenerateWeightsError struct {
	Traits []string
}

func (e *DegenerateWeightsError) Error() string {
	return fmt.Sprintf("no inflation detected in any trait (%s): cannot form weights", strings.Join(e.Traits, ", "))
}

// Weights normalizes the traits' inflation numerators so they sum to 1. The
// table is keyed by trait name, so a name appearing twice is an error rather
// than a silent overwrite.
func Weights(traits []*sumstats.Trait) (map[string]float64, error) {
	weights := make(map[string]float64, len(traits))

	var total float64
	for _, t := range traits {
		if _, dup := weights[t.Name]; dup {
			return nil, fmt.Errorf("trait name %q appears more than once across the inputs", t.Name)
		}
		weights[t.Name] = t.WeightNumerator
		total += t.WeightNumerator
	}

	if total == 0 {
		names := make([]string, 0, len(traits))
		for _, t := range traits {
			names = append(names, t.Name)
		}
		sort.Strings(names)

		return nil, &DegenerateWeightsError{Traits: names}
	}

	for name, numerator := range weights {
		weights[name] = numerator / total
	}

	return weights, nil
}
