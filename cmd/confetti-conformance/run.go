package main

import (
	"fmt"
	"os"
	"strings"

	confetti "github.com/confetti-lang/confetti-go"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the *.conf conformance fixtures under --dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConformance(cmd, dir, verbose)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./tests/conformance", "directory with conformance fixtures")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a line per fixture")

	return cmd
}

func runConformance(cmd *cobra.Command, dir string, verbose bool) error {
	fixtures, err := discoverFixtures(dir)
	if err != nil {
		return fmt.Errorf("globbing fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no .conf fixtures found in %s", dir)
	}

	var passed, failed, skipped int

	for _, fx := range fixtures {
		opts, _ := fx.requestedOptions()

		input, err := os.ReadFile(fx.confPath)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error reading %s: %v\n", fx.confPath, err)
			failed++
			continue
		}

		doc, perr := confetti.Parse(input, opts)
		if perr != nil {
			if fx.expectsFailure() {
				if verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "PASS %s (failed as expected: %v)\n", fx.name, perr)
				}
				passed++
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: unexpected error: %v\n", fx.name, perr)
				failed++
			}
			continue
		}

		want, hasPass := fx.passSnapshot()
		if !hasPass {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: parsed successfully but no .pass fixture found\n", fx.name)
			failed++
			continue
		}

		got := strings.TrimSpace(doc.String())
		if got != want {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: output mismatch (use 'diff %s' for details)\n", fx.name, fx.confPath)
			failed++
			continue
		}

		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", fx.name)
		}
		passed++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n===== Results =====\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Passed:  %d\n", passed)
	fmt.Fprintf(cmd.OutOrStdout(), "Failed:  %d\n", failed)
	fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %d\n", skipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Total:   %d\n", passed+failed+skipped)

	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}
