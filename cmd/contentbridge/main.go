// Command contentbridge ingests content from remote APIs into markdown
// files and local storage.
package main

import (
	"os"

	"github.com/custodia-labs/contentbridge-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
