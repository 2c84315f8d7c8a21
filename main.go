// gantt2svg lays out schedule tables as Gantt charts and renders them to
// SVG or PNG.
package main

import (
	"fmt"
	"os"

	"gantt2svg/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.DefaultApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
