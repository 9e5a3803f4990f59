package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented textual tree of a File to w, for --emit-ast.
func Dump(w io.Writer, f *File) {
	fmt.Fprintf(w, "File %s\n", f.Path)
	for _, s := range f.Stmts {
		dumpStmt(w, s, 1)
	}
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpStmt(w io.Writer, s Stmt, depth int) {
	indent(w, depth)
	switch n := s.(type) {
	case *BlockStmt:
		fmt.Fprintln(w, "Block")
		for _, inner := range n.Stmts {
			dumpStmt(w, inner, depth+1)
		}
	case *FunDecl:
		fmt.Fprintf(w, "FunDecl %s\n", n.Name)
		if n.Body != nil {
			dumpStmt(w, n.Body, depth+1)
		}
	case *IfStmt:
		fmt.Fprintf(w, "IfStmt %s\n", n.Cond)
		dumpStmt(w, n.Then, depth+1)
	default:
		fmt.Fprintln(w, s.String())
	}
}
