// Command folio manages the site theme, checks palette contrast and syncs
// display preferences.
package main

import (
	"os"

	"github.com/folio-dev/folio/internal/cli"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(1)
	}
}
