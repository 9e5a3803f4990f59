package pipeline

import (
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
	"github.com/octalide/mach/internal/module"
	"github.com/octalide/mach/internal/preprocessor"
)

// preprocessingReader wraps a module.FileReader so every source file is
// run through the conditional-inclusion preprocessor before the module
// manager hands it to the parser. A preprocessor failure is reported to
// sink and the raw (unpreprocessed) bytes are returned, so a malformed
// #@if still yields a parseable-if-wrong file rather than aborting the
// whole load.
type preprocessingReader struct {
	inner     module.FileReader
	constants preprocessor.ConstantTable
	sink      *diag.Sink

	// seen records the exact bytes handed to the parser for each path
	// (post-preprocessing), since every token offset diagnostics report
	// is computed against those bytes, not the file's bytes on disk.
	seen map[string][]byte
}

func (r *preprocessingReader) ReadFile(path string) ([]byte, error) {
	src, err := r.inner.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src = lexer.Normalize(src)
	out, perr := preprocessor.Run(src, r.constants)
	if perr != nil {
		if failure, ok := perr.(*preprocessor.Failure); ok {
			r.sink.Add(diag.Diagnostic{
				Level:   diag.LevelError,
				Code:    codeForPreprocessorFailure(failure),
				File:    path,
				Message: failure.Message,
			})
		}
		r.seen[path] = src
		return src, nil
	}
	r.seen[path] = out
	return out, nil
}

func (r *preprocessingReader) Exists(path string) bool {
	return r.inner.Exists(path)
}

func codeForPreprocessorFailure(f *preprocessor.Failure) string {
	switch f.Message {
	case "#@end without matching #@if":
		return diag.PP001
	case "unterminated #@if block":
		return diag.PP002
	case "#@or without matching #@if":
		return diag.PP003
	default:
		return diag.PP004
	}
}
