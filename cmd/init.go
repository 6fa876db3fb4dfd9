package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
)

const sampleProgram = `let n = 5
let total = 0
for i = 1 to n
    total = total + i
if total > 10
    print total
else
    print 0
`

// init: scaffold a new program
var InitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new .tp program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.HasSuffix(path, compiler.SourceExt) {
			path += compiler.SourceExt
		}

		progressf(cmd, "↪ scaffolding new program %q ...\n", path)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.WriteString(sampleProgram); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✔︎ created %s\n", path)
		return nil
	},
}
