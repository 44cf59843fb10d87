// Command extrude projects paths of a scene file into 2.5-D extrusions and
// writes the resulting scene as SVG or YAML.
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
