// Command confetti-conformance runs the directive-tree conformance
// fixtures against this module's lexer and parser, and can diff a single
// fixture's snapshot text against its expected .pass text.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "confetti-conformance",
		Short:         "Run and inspect Confetti conformance fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDiffCmd())
	return root
}
