package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/module"
	"github.com/octalide/mach/internal/pipeline"
	"github.com/octalide/mach/internal/target"
	"github.com/spf13/cobra"
)

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// sharedFlags holds the BuildOptions-mapped flags every subcommand that
// runs the pipeline accepts.
type sharedFlags struct {
	optLevel     int
	link         bool
	noPIE        bool
	debugInfo    bool
	emitAST      bool
	emitIR       bool
	includePaths []string
	aliases      []string
	targetStr    string
	configPath   string
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.optLevel, "opt", 0, "optimization level (0-3, forwarded to backend)")
	cmd.Flags().BoolVar(&f.link, "link", false, "invoke the linker after emission (backend, not yet implemented)")
	cmd.Flags().BoolVar(&f.noPIE, "no-pie", false, "link without position-independent executable support")
	cmd.Flags().BoolVar(&f.debugInfo, "debug-info", false, "include debug info in emitted output")
	cmd.Flags().BoolVar(&f.emitAST, "emit-ast", false, "print the resolved AST forest")
	cmd.Flags().BoolVar(&f.emitIR, "emit-ir", false, "emit intermediate representation (backend, not yet implemented)")
	cmd.Flags().StringArrayVarP(&f.includePaths, "include", "I", nil, "module search path (repeatable)")
	cmd.Flags().StringArrayVar(&f.aliases, "alias", nil, "module alias in name=dir form (repeatable)")
	cmd.Flags().StringVar(&f.targetStr, "target", "current", `compilation target as "platform/arch", or "current"`)
	cmd.Flags().StringVar(&f.configPath, "config", "mach.yaml", "optional project file pre-populating search paths/aliases")
}

func (f *sharedFlags) buildOptions(inputFile string) (pipeline.BuildOptions, error) {
	t, err := target.Parse(f.targetStr)
	if err != nil {
		return pipeline.BuildOptions{}, err
	}

	aliasMap := make(map[string]string, len(f.aliases))
	for _, a := range f.aliases {
		name, dir, ok := strings.Cut(a, "=")
		if !ok {
			return pipeline.BuildOptions{}, fmt.Errorf("invalid --alias %q, want name=dir", a)
		}
		aliasMap[name] = dir
	}

	opts := pipeline.BuildOptions{
		InputFile:    inputFile,
		OptLevel:     f.optLevel,
		LinkExe:      f.link,
		NoPIE:        f.noPIE,
		DebugInfo:    f.debugInfo,
		EmitAST:      f.emitAST,
		EmitIR:       f.emitIR,
		IncludePaths: f.includePaths,
		Aliases:      aliasMap,
		Target:       t,
	}

	if data, err := os.ReadFile(f.configPath); err == nil {
		cfg, cerr := pipeline.LoadProjectConfig(data)
		if cerr != nil {
			return pipeline.BuildOptions{}, fmt.Errorf("parsing %s: %w", f.configPath, cerr)
		}
		opts = cfg.Apply(opts)
		if f.targetStr == "current" && cfg.Target != "" {
			if ct, terr := target.Parse(cfg.Target); terr == nil {
				opts.Target = ct
			}
		}
	}
	opts.IncludePaths = append(append([]string{}, opts.IncludePaths...), filepath.Dir(inputFile))

	return opts, nil
}

// runPipeline drives the pipeline for a single entry file and, with
// --emit-ast, prints every parsed module's tree. It does not render
// diagnostics; callers pass the returned sink to renderDiagnostics.
func runPipeline(opts pipeline.BuildOptions) (*pipeline.Result, *diag.Sink, error) {
	sink := diag.NewSink()
	d := pipeline.NewDriver(module.OSFileReader{}, sink)
	res, err := d.Run(opts)
	if opts.EmitAST && res != nil {
		names := make([]string, 0, len(res.Files))
		for name := range res.Files {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ast.Dump(os.Stdout, res.Files[name])
		}
	}
	return res, sink, err
}

// renderDiagnostics prints every collected diagnostic. sources should be
// res.Sources (the exact preprocessed bytes tokens were computed
// against) when a Result is available; a file missing from it is read
// from disk as a best-effort fallback (e.g. a module-resolution failure
// that never reached preprocessing).
func renderDiagnostics(sink *diag.Sink, sources map[string][]byte) {
	records := sink.Records()
	if len(records) == 0 {
		return
	}
	if sources == nil {
		sources = make(map[string][]byte)
	}
	for _, d := range records {
		if d.File == "" {
			continue
		}
		if _, ok := sources[d.File]; ok {
			continue
		}
		if data, err := os.ReadFile(d.File); err == nil {
			sources[d.File] = data
		}
	}
	diag.Render(os.Stdout, records, sources)
}

func summarize(sink *diag.Sink) string {
	n := len(sink.Records())
	if sink.HasErrors() {
		return red(fmt.Sprintf("%d diagnostic(s), build failed", n))
	}
	if n > 0 {
		return yellow(fmt.Sprintf("%d diagnostic(s), no errors", n))
	}
	return green("clean")
}
