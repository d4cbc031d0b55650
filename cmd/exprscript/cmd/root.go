package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "exprscript",
	Short: "exprscript expression-language evaluator",
	Long: `exprscript is a tree-walking evaluator for a small embedded
expression language: statement lists of if/for/while/foreach control
flow, lambdas, primary-expression chains over a host object model, and
assignment, all over a compact dynamically tagged value set.

It is designed to be embedded: a host application supplies variable
lookup, method/member/indexer dispatch, and a comparer registry, and
this binary is a thin script runner on top of that same evaluator.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
