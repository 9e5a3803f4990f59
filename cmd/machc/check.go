package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	flags := &sharedFlags{}
	var watch bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Run the semantic pipeline and report diagnostics",
		Long:  "check runs preprocessing through monomorphization over <file> and its dependencies, printing every diagnostic raised. It never touches code generation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return runWatch(flags)
			}
			if len(args) != 1 {
				return fmt.Errorf("check requires exactly one file unless --watch is set")
			}
			return runCheck(flags, args[0])
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&watch, "watch", false, "interactive loop: re-check snippets/files as you submit them")
	return cmd
}

func runCheck(flags *sharedFlags, file string) error {
	opts, err := flags.buildOptions(file)
	if err != nil {
		return err
	}

	res, sink, err := runPipeline(opts)
	var sources map[string][]byte
	if res != nil {
		sources = res.Sources
	}
	renderDiagnostics(sink, sources)

	fmt.Println(summarize(sink))
	if err != nil {
		return err
	}
	if sink.HasErrors() {
		return fmt.Errorf("check failed")
	}
	return nil
}
