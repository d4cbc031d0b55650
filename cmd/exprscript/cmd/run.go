package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/exprscript/eval"
	"github.com/cwbudde/exprscript/host"
	"github.com/cwbudde/exprscript/parser"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an exprscript file or expression",
	Long: `Execute an exprscript program from a file or inline expression.

Examples:
  # Run a script file
  exprscript run script.es

  # Evaluate an inline expression
  exprscript run -e "1 + 2"

  # Run with AST dump (for debugging)
  exprscript run --dump-ast script.es`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	program, err := parser.Parse(input)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	h := host.NewMap(nil)
	registerBuiltins(h)

	w := eval.New(h)
	results, err := w.Run(program)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	for _, r := range results {
		fmt.Println(r.String())
	}
	return nil
}
