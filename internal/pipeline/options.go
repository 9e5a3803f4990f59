// Package pipeline orchestrates mach's semantic analysis stages —
// preprocessor, lexer/parser (via module.Manager), scope/symbol
// registration, type checking, and monomorphization — into a single
// driver call, and exposes the resolved program as the backend contract
// spec.md section 6.5 describes. Code emission and linking are out of
// scope; Driver.Run stops where a backend would pick up.
package pipeline

import "github.com/octalide/mach/internal/target"

// BuildOptions mirrors spec.md section 6.2's command-line contract
// field-for-field. Fields the backend/linker would consume (OptLevel,
// LinkExe, NoPIE, DebugInfo, the Emit* paths, LinkObjects) are recorded
// here so the CLI can parse them once, even though this package's
// Driver only acts on the subset a semantic-only pipeline needs.
type BuildOptions struct {
	InputFile  string
	OutputFile string

	OptLevel  int
	LinkExe   bool
	NoPIE     bool
	DebugInfo bool

	EmitAST bool
	EmitIR  bool
	EmitASM bool
	ASTPath string
	IRPath  string
	ASMPath string

	IncludePaths []string
	LinkObjects  []string
	Aliases      map[string]string

	Target target.Target

	// PreprocessorConstants supplements the target-derived
	// __SYS_ARCH__/__SYS_PLAT__ pair with extra #@if constants (spec.md
	// section 6.4); a driver-supplied entry never overrides the two
	// canonical ones.
	PreprocessorConstants map[string]int64
}

// Defaults fills the zero-value fields a caller left unset: OutputFile
// from InputFile's stem and Target from the host.
func (o BuildOptions) Defaults() BuildOptions {
	if o.Target == (target.Target{}) {
		o.Target = target.Current()
	}
	if o.OutputFile == "" {
		o.OutputFile = stem(o.InputFile)
	}
	return o
}

func stem(path string) string {
	end := len(path)
	for i := end - 1; i >= 0; i-- {
		if path[i] == '.' {
			end = i
			break
		}
		if path[i] == '/' || path[i] == '\\' {
			break
		}
	}
	return path[:end]
}
