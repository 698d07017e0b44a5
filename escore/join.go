package escore

import (
	"sort"

	"github.com/YangZhang-YZU/Goose-Plumage-Growth/sumstats"
)

// CommonVariants returns the variant identifiers present in every trait,
// sorted ascending. A variant missing from even one trait is dropped:
// composite scores are only comparable when every variant is scored over the
// same trait basis. An empty result is a valid, if degenerate, outcome.
func CommonVariants(traits []*sumstats.Trait) []string {
	if len(traits) == 0 {
		return nil
	}

	// Seed candidates from the smallest trait so membership checks run over
	// the fewest variants.
	smallest := traits[0]
	for _, t := range traits[1:] {
		if len(t.P) < len(smallest.P) {
			smallest = t
		}
	}

	var common []string
Candidates:
	for snp := range smallest.P {
		for _, t := range traits {
			if _, ok := t.P[snp]; !ok {
				continue Candidates
			}
		}
		common = append(common, snp)
	}

	sort.Strings(common)

	return common
}
