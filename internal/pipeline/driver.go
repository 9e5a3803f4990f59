package pipeline

import (
	"fmt"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/mono"
	"github.com/octalide/mach/internal/module"
	"github.com/octalide/mach/internal/preprocessor"
	"github.com/octalide/mach/internal/scope"
	"github.com/octalide/mach/internal/typecheck"
	"github.com/octalide/mach/internal/types"
)

// Driver runs the semantic pipeline end to end: preprocess every loaded
// file, parse it through module.Manager, register and type-check each
// module in dependency order, then drain the monomorphizer's queue.
//
// Stage failures follow spec.md section 2's abort rule: a module that
// fails to parse or register is skipped for the stages after it (its
// Sink already carries the diagnostic), but sibling modules with no
// dependency on it still run to completion. Run only returns an error
// when nothing usable survived at all.
type Driver struct {
	Reader module.FileReader
	Sink   *diag.Sink
}

func NewDriver(reader module.FileReader, sink *diag.Sink) *Driver {
	return &Driver{Reader: reader, Sink: sink}
}

// Run executes the pipeline for opts.InputFile and everything it
// transitively `use`s.
func (d *Driver) Run(opts BuildOptions) (*Result, error) {
	opts = opts.Defaults()

	constants := preprocessor.ConstantTable{
		"__SYS_ARCH__": int64(opts.Target.Architecture),
		"__SYS_PLAT__": int64(opts.Target.Platform),
	}
	for name, v := range opts.PreprocessorConstants {
		if name == "__SYS_ARCH__" || name == "__SYS_PLAT__" {
			continue
		}
		constants[name] = v
	}

	preprocessed := &preprocessingReader{inner: d.Reader, constants: constants, sink: d.Sink, seen: make(map[string][]byte)}
	mgr := module.NewManager(preprocessed, opts.IncludePaths, opts.Aliases, d.Sink)

	entry := entrySegments(opts.InputFile)
	if _, err := mgr.Load(entry); err != nil {
		if len(mgr.All()) == 0 {
			return nil, fmt.Errorf("pipeline: loading %s: %w", opts.InputFile, err)
		}
	}

	interner := types.NewInterner(opts.Target)
	coord := mono.NewCoordinator()
	checker := typecheck.NewChecker(opts.Target, interner, coord, d.Sink)
	global := scope.NewGlobal()

	order := mgr.TopologicalSort()
	files := make(map[string]*ast.File, len(order))
	modScopes := make(map[string]*scope.Scope, len(order))

	for _, name := range order {
		mod, ok := mgr.Get(name)
		if !ok || mod.AST == nil {
			continue
		}
		modScopes[name] = checker.RegisterFile(mod.AST, global, name, mod.FilePath)
		files[name] = mod.AST
	}

	for _, name := range order {
		mod, ok := mgr.Get(name)
		if !ok || mod.AST == nil {
			continue
		}
		checker.CheckFile(mod.AST, modScopes[name], name, mod.FilePath)
	}

	if err := coord.Drain(checker.ProcessSpecialization); err != nil {
		return nil, fmt.Errorf("pipeline: monomorphization: %w", err)
	}

	manglers := make(map[string]func(string) string, len(modScopes))
	for name := range modScopes {
		manglers[name] = mangler(name)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("pipeline: %s produced no analyzable module", opts.InputFile)
	}

	return &Result{
		Files:           files,
		Global:          global,
		Modules:         modScopes,
		Specializations: coord.Specializations(),
		ModuleManglers:  manglers,
		Sources:         preprocessed.seen,
	}, nil
}

func entrySegments(path string) []string {
	name := path
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			name = name[:i]
			break
		}
	}
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' || name[i] == '\\' {
			return []string{name[i+1:]}
		}
	}
	return []string{name}
}
