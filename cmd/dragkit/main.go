package main

import (
	"runtime"

	"github.com/bnema/dragkit/internal/cli/cmd"
	"github.com/bnema/dragkit/internal/domain/build"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
