package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/transpile/internal/compiler"
)

var TokensCmd = &cobra.Command{
	Use:   "tokens <source.tp>",
	Short: "Print the token stream of a .tp file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := compiler.LoadSource(args[0])
		if err != nil {
			return err
		}
		tokens, err := compiler.Tokenize(content)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Literal)
		}
		return nil
	},
}
