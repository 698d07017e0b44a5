// Package compileinfo reports the build provenance embedded in the binary by
// the Go toolchain, so output files can be traced back to the code that
// produced them.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	commit := c.Commit
	if len(commit) > 12 {
		commit = commit[:12]
	}

	suffix := ""
	if c.Modified {
		suffix = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s built with %s from commit %s at %s%s", c.Package, c.GoVersion, commit, c.CommitTime, suffix)
}

func Get() CompileInfo {
	out := CompileInfo{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Package = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
