package main

import (
	"os"

	"github.com/cuba-labs/cuba-cli/internal/cli"
	"github.com/cuba-labs/cuba-cli/internal/clierr"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err != nil {
		cli.ReportError(os.Stderr, err)
		os.Exit(clierr.ExitCodeFromError(err))
	}
}
