package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
)

// verify: interpreter vs generated python
var VerifyCmd = &cobra.Command{
	Use:   "verify <source.tp>",
	Short: "Compare interpreter output with the generated Python",
	Args:  cobra.ExactArgs(1),
	RunE:  verifyRun,
}

func init() {
	VerifyCmd.Flags().IntVar(&gas, "gas", 0, "maximum number of statements per run (0 = unlimited)")
}

func verifyRun(cmd *cobra.Command, args []string) error {
	src := args[0]

	content, err := compiler.LoadSource(src)
	if err != nil {
		return err
	}

	progressf(cmd, "↪ verifying %q against generated python ...\n", src)

	report, err := compiler.Verify(content, gas)
	if err != nil {
		return err
	}

	if i := report.FirstDifference(); i >= 0 {
		return fmt.Errorf("outputs differ at line %d: interpreter printed %s, python printed %s",
			i+1, lineAt(report.Interpreted, i), lineAt(report.Generated, i))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✔︎ %s: %d matching lines\n", src, len(report.Interpreted))
	return nil
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return fmt.Sprintf("%q", lines[i])
	}
	return "nothing"
}
