package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
)

var printSource bool

// ast: dump the parse tree
var ASTCmd = &cobra.Command{
	Use:   "ast <source.tp>",
	Short: "Print the parsed syntax tree of a .tp file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := compiler.LoadSource(args[0])
		if err != nil {
			return err
		}
		prog, err := compiler.ParseProgram(content)
		if err != nil {
			return err
		}
		if printSource {
			fmt.Fprint(cmd.OutOrStdout(), prog.String())
			return nil
		}
		_, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", prog)
		return err
	},
}

func init() {
	ASTCmd.Flags().BoolVar(&printSource, "source", false, "print the tree back as normalized source")
}
