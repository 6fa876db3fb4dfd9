package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	outDir  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "transpile",
	Short: "Transpile CLI: interpreter and Python/Java/C/C++ generator",
	Long: `transpile runs and translates programs written in a small
indentation-based language (.tp files).

Commands:
  init    Scaffold a new .tp program
  build   Generate Python, Java, C and C++ from a .tp file
  run     Interpret a .tp file
  tokens  Print the token stream of a .tp file
  ast     Print the parsed syntax tree of a .tp file
  verify  Compare interpreter output with the generated Python
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "out", "output directory for build artifacts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress while working")

	rootCmd.AddCommand(InitCmd, BuildCmd, RunCmd, TokensCmd, ASTCmd, VerifyCmd)
}

// progressf prints a progress line when --verbose is set.
func progressf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}
