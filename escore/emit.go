package escore

import (
	"bufio"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
)

// WriteTSV serializes results as a tab-delimited table with a header row and
// scores fixed to six decimal places. snpCol names the identifier column so
// the output header mirrors whatever column name the inputs used.
func WriteTSV(w io.Writer, snpCol string, results []Result) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\tE_score\n", snpCol); err != nil {
		return pfx.Err(err)
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s\t%.6f\n", r.SNP, r.Score); err != nil {
			return pfx.Err(err)
		}
	}

	return pfx.Err(bw.Flush())
}
