package main

import (
	"fmt"
	"os"
	"strings"

	confetti "github.com/confetti-lang/confetti-go"
	"github.com/kylelemons/godebug/pretty"
	"github.com/spf13/cobra"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <fixture.conf>",
		Short: "Parse one fixture and diff its snapshot text against its .pass sidecar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0])
		},
	}
	return cmd
}

func runDiff(cmd *cobra.Command, confPath string) error {
	base := strings.TrimSuffix(confPath, ".conf")
	fx := fixture{name: base, confPath: confPath, baseName: base}

	input, err := os.ReadFile(confPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", confPath, err)
	}

	opts, _ := fx.requestedOptions()
	doc, perr := confetti.Parse(input, opts)
	if perr != nil {
		if fx.expectsFailure() {
			fmt.Fprintf(cmd.OutOrStdout(), "fixture fails to parse as expected: %v\n", perr)
			return nil
		}
		return fmt.Errorf("unexpected parse error: %w", perr)
	}

	want, hasPass := fx.passSnapshot()
	if !hasPass {
		return fmt.Errorf("no .pass sidecar for %s", confPath)
	}

	got := strings.TrimSpace(doc.String())
	if diff := pretty.Compare(got, want); diff != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", diff)
		return fmt.Errorf("output does not match %s.pass", base)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s matches %s.pass\n", confPath, base)
	return nil
}
