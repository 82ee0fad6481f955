// Command siteicon resolves site icons from the command line: a thin
// wrapper over the resolver for scripts, cron sweeps and debugging.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
