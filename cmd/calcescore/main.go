// calcescore combines P values from multiple trait-association summary
// statistics into one composite E-score per variant. Each trait is weighted
// by its genomic inflation, max(0, mean chi-square - 1), normalized across
// traits; a variant is scored only if it appears in every input.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	plumage "github.com/YangZhang-YZU/Goose-Plumage-Growth"
	_ "github.com/YangZhang-YZU/Goose-Plumage-Growth/compileinfoprint"
	"github.com/YangZhang-YZU/Goose-Plumage-Growth/escore"
	"github.com/YangZhang-YZU/Goose-Plumage-Growth/sumstats"
)

// stringSliceFlag accumulates the values of a repeatable flag.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var (
		inputs stringSliceFlag
		output string
		pCol   string
		snpCol string
	)

	flag.Var(&inputs, "input", "Path to a summary statistics file. Repeat the flag once per trait. Delimiter is auto-detected; gzip/zlib/bzip2 compression is handled.")
	flag.StringVar(&output, "output", "", "Path to save the tab-delimited E-score output.")
	flag.StringVar(&pCol, "p_col", "P", "Name of the P-value column in the input files.")
	flag.StringVar(&snpCol, "snp_col", "SNP", "Name of the variant-identifier column in the input files.")
	flag.Parse()

	if len(inputs) < 1 || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(inputs, output, snpCol, pCol); err != nil {
		log.Fatalln(err)
	}

	log.Println("calcescore completed")
}

func run(inputs []string, output, snpCol, pCol string) error {
	log.Printf("Computing E-scores for %d traits\n", len(inputs))

	traits := make([]*sumstats.Trait, 0, len(inputs))
	for _, input := range inputs {
		path, err := plumage.ExpandHome(input)
		if err != nil {
			return err
		}

		trait, err := sumstats.Load(path, snpCol, pCol)
		if err != nil {
			return err
		}

		log.Printf("Loaded %s: mean chi-square %.4f, weight numerator %.4f\n", trait.Name, trait.MeanChiSquare, trait.WeightNumerator)
		traits = append(traits, trait)
	}

	weights, err := escore.Weights(traits)
	if err != nil {
		return err
	}

	common := escore.CommonVariants(traits)
	log.Printf("Common variants across all traits: %d\n", len(common))
	if len(common) == 0 {
		log.Println("No variant is shared by every input; the output will contain only a header")
	}

	results := escore.Scores(traits, weights, common)

	outPath, err := plumage.ExpandHome(output)
	if err != nil {
		return err
	}

	// The output file is only created once scoring has succeeded, so a failed
	// run leaves no partial results behind.
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if err := escore.WriteTSV(f, snpCol, results); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", outPath, err)
	}

	log.Printf("Saved %d E-scores to %s\n", len(results), outPath)

	return nil
}
