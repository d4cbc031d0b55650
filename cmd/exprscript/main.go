// Command exprscript is a CLI around the exprscript evaluator: run a
// script from a file or an inline string, or inspect its tokens/AST.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/exprscript/cmd/exprscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
