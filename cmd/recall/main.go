// Command recall is the CLI entrypoint for the always-on screen-capture
// memory engine.
package main

import (
	"fmt"
	"os"

	"github.com/lucidtrace/recall/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
