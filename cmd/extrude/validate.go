package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"honnef.co/go/extrude/scene"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene.yaml>...",
		Short: "Check scene files for malformed vector networks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				doc, err := scene.LoadFile(path)
				if err != nil {
					return err
				}
				paths := 0
				for n := range doc.Nodes() {
					if n.Kind == scene.KindPath {
						paths++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d paths)\n", path, paths)
			}
			return nil
		},
	}
}
