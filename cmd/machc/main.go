// Command machc drives mach's semantic analysis pipeline from the
// command line: preprocessing, parsing, module resolution, scope
// building, type checking and monomorphization. It stops short of code
// generation and linking, which remain a backend's job.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "machc",
		Short:         "Semantic front end for the mach language",
		Long:          "machc runs mach source through preprocessing, parsing, scope/type resolution and monomorphization, reporting diagnostics. It does not emit code or invoke a linker.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(), newBuildCmd(), newTargetsCmd())
	return root
}
