package typecheck

import (
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/lexer"
)

func (c *Checker) errf(ctx Context, code string, tok lexer.Token, format string, args ...any) {
	c.Sink.Errorf(code, ctx.File, tok, format, args...)
}
