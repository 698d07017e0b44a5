package escore

import (
	"math"
	"sort"

	"github.com/YangZhang-YZU/Goose-Plumage-Growth/sumstats"
)

// PFloor is the smallest P value that contributes distinctly to a score.
// Anything below it is clamped before the -log10 transform, which keeps a
// literal zero out of the logarithm and caps any single trait's contribution
// at 300 * weight. P values above the floor pass through unchanged. The
// floor is part of the output contract: two variants whose P values both sit
// below it are indistinguishable to that trait.
const PFloor = 1e-300

// Result is one variant's composite score.
type Result struct {
	SNP   string
	Score float64
}

// Scores computes, for every common variant, the sum over traits of
// weight * -log10(max(P, PFloor)). Traits are visited in lexicographic name
// order so that floating-point rounding is reproducible run to run. Results
// come back sorted by descending score, ties broken by ascending variant
// identifier.
func Scores(traits []*sumstats.Trait, weights map[string]float64, common []string) []Result {
	ordered := make([]*sumstats.Trait, len(traits))
	copy(ordered, traits)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	results := make([]Result, 0, len(common))
	for _, snp := range common {
		var score float64
		for _, t := range ordered {
			p := math.Max(t.P[snp], PFloor)
			score += weights[t.Name] * -math.Log10(p)
		}
		results = append(results, Result{SNP: snp, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].SNP < results[j].SNP
	})

	return results
}
