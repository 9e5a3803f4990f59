package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	flags := &sharedFlags{}

	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Resolve <file> and report the backend contract it produces",
		Long: "build runs the same semantic pipeline as check, then — if it succeeds — summarizes the backend contract " +
			"(resolved module count, specialization count). Code emission and linking are not implemented; " +
			"--link/--opt/--emit-ir are accepted and threaded through BuildOptions for a future backend but are no-ops today.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runBuild(flags *sharedFlags, file string) error {
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
		return fmt.Errorf("build failed")
	}

	fmt.Printf("%s %d module(s) resolved, %d specialization(s)\n", cyan("contract:"), len(res.Modules), len(res.Specializations))
	if opts.LinkExe || opts.EmitIR {
		fmt.Println(dim("(backend code emission and linking are not implemented by this front end)"))
	}
	return nil
}
