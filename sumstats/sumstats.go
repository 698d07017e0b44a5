// Package sumstats loads per-trait GWAS summary statistics and derives the
// inflation measures that the E-score pipeline weights traits by.
package sumstats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	plumage "github.com/YangZhang-YZU/Goose-Plumage-Growth"
)

// ChiSquareColumn is recognized automatically when present in an input
// header; its per-row values are used instead of deriving chi-square from
// the P value.
const ChiSquareColumn = "CHI2"

// Trait holds one trait's summary statistics keyed by variant identifier,
// along with its mean chi-square and the unnormalized weight it earns from
// inflation above the null expectation of 1. A Trait is immutable once Load
// returns it.
type Trait struct {
	Name            string
	P               map[string]float64
	MeanChiSquare   float64
	WeightNumerator float64
}

// Load reads one summary statistics file into a Trait. The delimiter is
// sniffed from the file contents and gzip/zlib/bzip2 compression is handled
// transparently. snpCol and pCol name the variant-identifier and P-value
// columns; both must be present in the header. When no CHI2 column exists,
// each row's chi-square is derived from its P value via ChiSquareISF1.
//
// Any malformed row fails the load: P values must parse as floats in (0, 1],
// chi-square values (when the column exists) as floats >= 0, and a variant
// identifier may not repeat within the file.
func Load(path, snpCol, pCol string) (*Trait, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	delim, err := sniffDelimiter(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	r, err := plumage.MaybeDecompress(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	defer r.Close()

	csvr := csv.NewReader(r)
	csvr.Comma = delim
	csvr.TrimLeadingSpace = true
	csvr.ReuseRecord = true

	header, err := csvr.Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: reading header: %w", path, err))
	}

	cols, err := mapColumns(path, header, snpCol, pCol)
	if err != nil {
		return nil, pfx.Err(err)
	}
	fieldCount := len(header)

	pvals := make(map[string]float64)
	var chis []float64

	for line := 2; ; line++ {
		row, err := csvr.Read()
		if err == io.EOF {
			break
		} else if errors.Is(err, csv.ErrFieldCount) {
			return nil, pfx.Err(fmt.Errorf("%s: line %d: row has %d fields, but the header names %d columns", path, line, len(row), fieldCount))
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		snp := row[cols.snp]
		if _, seen := pvals[snp]; seen {
			return nil, &DuplicateKeyError{File: path, SNP: snp}
		}

		p, err := parseP(path, line, pCol, row[cols.p])
		if err != nil {
			return nil, pfx.Err(err)
		}
		pvals[snp] = p

		var chi float64
		if cols.chi2 >= 0 {
			chi, err = parseChi(path, line, row[cols.chi2])
			if err != nil {
				return nil, pfx.Err(err)
			}
		} else {
			chi = ChiSquareISF1(p)
		}
		chis = append(chis, chi)
	}

	mean, err := stats.Mean(chis)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: no data rows", path))
	}

	return &Trait{
		Name:            TraitName(path),
		P:               pvals,
		MeanChiSquare:   mean,
		WeightNumerator: math.Max(0, mean-1),
	}, nil
}

// TraitName derives a trait label from a file path: the base name with its
// extension stripped, and any compression suffix stripped first so that
// plumage.assoc.txt.gz and plumage.assoc.txt name the same trait.
func TraitName(path string) string {
	base := filepath.Base(path)
	switch filepath.Ext(base) {
	case ".gz", ".bz2", ".zz":
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// sniffDelimiter detects the field delimiter from the (decompressed) head of
// the file and rewinds f so the caller can read it from the top. The
// decompressed stream itself cannot seek, so the caller has to decompress
// again.
func sniffDelimiter(f *os.File) (rune, error) {
	r, err := plumage.MaybeDecompress(f)
	if err != nil {
		return 0, err
	}

	delim := plumage.DetermineDelimiter(r)
	r.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	return delim, nil
}

type columns struct {
	snp  int
	p    int
	chi2 int // -1 when absent
}

func mapColumns(path string, header []string, snpCol, pCol string) (columns, error) {
	cols := columns{snp: -1, p: -1, chi2: -1}

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case snpCol:
			cols.snp = i
		case pCol:
			cols.p = i
		case ChiSquareColumn:
			cols.chi2 = i
		}
	}

	if cols.snp < 0 {
		return cols, &SchemaError{File: path, Column: snpCol}
	}
	if cols.p < 0 {
		return cols, &SchemaError{File: path, Column: pCol}
	}

	return cols, nil
}

func parseP(path string, line int, col, raw string) (float64, error) {
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: line %d: column %s: cannot parse %q as a P value", path, line, col, raw)
	}
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return 0, fmt.Errorf("%s: line %d: column %s: P value %s outside (0, 1]", path, line, col, raw)
	}

	return p, nil
}

func parseChi(path string, line int, raw string) (float64, error) {
	chi, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: line %d: column %s: cannot parse %q as a chi-square value", path, line, ChiSquareColumn, raw)
	}
	if math.IsNaN(chi) || math.IsInf(chi, 0) || chi < 0 {
		return 0, fmt.Errorf("%s: line %d: column %s: chi-square value %s is not a finite nonnegative number", path, line, ChiSquareColumn, raw)
	}

	return chi, nil
}
