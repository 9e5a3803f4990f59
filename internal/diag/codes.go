// Package diag provides the diagnostic sink shared by every stage of the
// mach pipeline, plus the error code taxonomy each stage reports under.
package diag

// Error codes are grouped by the stage that raises them, mirroring the
// pipeline order in spec.md section 2.
const (
	// Preprocessor (PP###)
	PP001 = "PP001" // unmatched #@end
	PP002 = "PP002" // unterminated #@if block
	PP003 = "PP003" // #@or without a matching #@if
	PP004 = "PP004" // invalid #@if/#@or expression

	// Lexer (LEX###)
	LEX001 = "LEX001" // unterminated string literal
	LEX002 = "LEX002" // unterminated char literal
	LEX003 = "LEX003" // invalid numeric literal

	// Parser (PAR###)
	PAR001 = "PAR001" // unexpected token
	PAR002 = "PAR002" // missing closing delimiter
	PAR003 = "PAR003" // invalid function declaration
	PAR004 = "PAR004" // or without a leading if
	PAR005 = "PAR005" // invalid type expression
	PAR006 = "PAR006" // invalid use declaration

	// Module manager (MOD###)
	MOD001 = "MOD001" // module not found
	MOD002 = "MOD002" // circular dependency
	MOD003 = "MOD003" // duplicate module load mismatch

	// Scope / symbol builder (SCP###)
	SCP001 = "SCP001" // redeclaration in the same scope
	SCP002 = "SCP002" // unknown identifier

	// Type checker (TC###)
	TC001 = "TC001" // type mismatch / non-assignable
	TC002 = "TC002" // unknown type
	TC003 = "TC003" // wrong arity
	TC004 = "TC004" // non-lvalue
	TC005 = "TC005" // invalid cast
	TC006 = "TC006" // invalid operand
	TC007 = "TC007" // break/continue outside loop
	TC008 = "TC008" // unknown field

	// Monomorphizer (MONO###)
	MONO001 = "MONO001" // specialization failed
	MONO002 = "MONO002" // wrong type-argument arity
)

// Info describes one registered error code.
type Info struct {
	Code        string
	Phase       string
	Description string
}

// Registry maps every known code to its descriptive metadata, mirroring
// the teacher's ErrorRegistry / GetErrorInfo pattern.
var Registry = map[string]Info{
	PP001: {PP001, "preprocessor", "unmatched #@end"},
	PP002: {PP002, "preprocessor", "unterminated #@if block"},
	PP003: {PP003, "preprocessor", "#@or without matching #@if"},
	PP004: {PP004, "preprocessor", "invalid conditional expression"},

	LEX001: {LEX001, "lexer", "unterminated string literal"},
	LEX002: {LEX002, "lexer", "unterminated char literal"},
	LEX003: {LEX003, "lexer", "invalid numeric literal"},

	PAR001: {PAR001, "parser", "unexpected token"},
	PAR002: {PAR002, "parser", "missing closing delimiter"},
	PAR003: {PAR003, "parser", "invalid function declaration"},
	PAR004: {PAR004, "parser", "or without leading if"},
	PAR005: {PAR005, "parser", "invalid type expression"},
	PAR006: {PAR006, "parser", "invalid use declaration"},

	MOD001: {MOD001, "module", "module not found"},
	MOD002: {MOD002, "module", "circular dependency"},
	MOD003: {MOD003, "module", "module identity mismatch"},

	SCP001: {SCP001, "scope", "redeclaration"},
	SCP002: {SCP002, "scope", "unknown identifier"},

	TC001: {TC001, "typecheck", "non-assignable types"},
	TC002: {TC002, "typecheck", "unknown type"},
	TC003: {TC003, "typecheck", "wrong arity"},
	TC004: {TC004, "typecheck", "non-lvalue operand"},
	TC005: {TC005, "typecheck", "invalid cast"},
	TC006: {TC006, "typecheck", "invalid operand"},
	TC007: {TC007, "typecheck", "break/continue outside loop"},
	TC008: {TC008, "typecheck", "unknown field"},

	MONO001: {MONO001, "monomorphize", "specialization failed"},
	MONO002: {MONO002, "monomorphize", "wrong type-argument arity"},
}

// Phase returns the phase name a code was registered under.
func Phase(code string) string {
	if info, ok := Registry[code]; ok {
		return info.Phase
	}
	return "unknown"
}
