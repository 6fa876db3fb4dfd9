package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
	"github.com/arnavsurve/transpile/internal/compiler/interp"
)

var gas int

// run: interpret a .tp file
var RunCmd = &cobra.Command{
	Use:   "run <source.tp>",
	Short: "Interpret a .tp file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	RunCmd.Flags().IntVar(&gas, "gas", 0, "maximum number of statements to execute (0 = unlimited)")
}

func runRun(cmd *cobra.Command, args []string) error {
	src := args[0]

	content, err := compiler.LoadSource(src)
	if err != nil {
		return err
	}

	progressf(cmd, "↪ running %q ...\n", src)

	sink := interp.NewWriterSink(cmd.OutOrStdout())
	if err := compiler.Run(content, sink, interp.WithStepLimit(gas)); err != nil {
		return err
	}
	if sink.Err != nil {
		return sink.Err
	}

	progressf(cmd, "✔︎ finished %s\n", src)
	return nil
}
