package sumstats

import "fmt"

// SchemaError reports a required column missing from a summary statistics
// file's header.
type SchemaError struct {
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q not found in header", e.File, e.Column)
}

// DuplicateKeyError reports a variant identifier appearing more than once
// within a single trait file. Picking either row would silently corrupt the
// weighted sum downstream, so the load aborts instead.
type DuplicateKeyError struct {
	File string
	SNP  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: variant %q appears more than once", e.File, e.SNP)
}
