package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
	"github.com/arnavsurve/transpile/internal/compiler/emitter"
)

var targetName string

// build: generate target sources from a .tp file
var BuildCmd = &cobra.Command{
	Use:   "build <source.tp>",
	Short: "Generate Python, Java, C and C++ from a .tp file",
	Args:  cobra.ExactArgs(1),
	RunE:  buildRun,
}

func init() {
	BuildCmd.Flags().StringVarP(&targetName, "target", "t", "all", "target language: python, java, c, cpp or all")
}

func buildRun(cmd *cobra.Command, args []string) error {
	src := args[0]

	targets, err := resolveTargets(targetName)
	if err != nil {
		return err
	}

	progressf(cmd, "↪ building %q → %q ...\n", src, outDir+"/")

	outputs, err := compiler.CompileAndWrite(src, outDir, targets)
	if err != nil {
		return err
	}

	for _, out := range outputs {
		for _, w := range out.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: warning: %s\n", src, out.Target.Name, w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✔︎ wrote %s to %s\n", out.Target.Name, out.Path)
	}
	return nil
}

func resolveTargets(name string) ([]*emitter.Target, error) {
	if strings.EqualFold(name, "all") {
		return emitter.Targets(), nil
	}
	t, err := emitter.Lookup(name)
	if err != nil {
		return nil, err
	}
	return []*emitter.Target{t}, nil
}
