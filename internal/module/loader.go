// Package module implements mach's module graph: `use`-path resolution
// through an alias map and search paths, idempotent loading by
// canonical path, and circular-import detection.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/octalide/mach/internal/ast"
	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/parser"
	"github.com/octalide/mach/internal/scope"
)

// FileReader abstracts module source lookup so the loader can run
// against a real filesystem or an in-memory fixture without touching
// disk in tests.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// OSFileReader reads from the host filesystem.
type OSFileReader struct{}

func (OSFileReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (OSFileReader) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Module is one loaded, independently-parsed source file, identified by
// the dotted use-path that named it.
type Module struct {
	Name       string
	FilePath   string
	AST        *ast.File
	Scope      *scope.Scope
	IsParsed   bool
	IsAnalyzed bool
	Deps       []string // resolved dotted paths of every `use` target, in source order
}

// CircularDependencyError reports a `use` cycle, carrying the full
// chain from the entry module back to the re-entered one.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Chain, " -> "))
}

// NotFoundError reports a `use` path that resolved to no candidate file.
type NotFoundError struct {
	Path       string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("module %q not found (tried: %s)", e.Path, strings.Join(e.Candidates, ", "))
}

// Manager resolves `use` paths, loads and parses modules, and detects
// import cycles. It owns one *diag.Sink shared by every module it
// parses.
type Manager struct {
	Reader      FileReader
	SearchPaths []string
	Aliases     map[string]string // alias prefix -> base directory
	Sink        *diag.Sink

	cache     map[string]*Module
	loadStack []string
}

func NewManager(reader FileReader, searchPaths []string, aliases map[string]string, sink *diag.Sink) *Manager {
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Manager{
		Reader:      reader,
		SearchPaths: searchPaths,
		Aliases:     aliases,
		Sink:        sink,
		cache:       make(map[string]*Module),
	}
}

func canonicalName(segments []string) string { return strings.Join(segments, ".") }

// resolvePath implements spec.md section 4.4's two-rule search: an
// aliased first segment roots the remaining path under the alias's base
// directory; otherwise every search path is tried in order.
func (m *Manager) resolvePath(segments []string) (string, []string, error) {
	var candidates []string

	if len(segments) > 0 {
		if base, ok := m.Aliases[segments[0]]; ok {
			rel := filepath.Join(segments[1:]...) + ".mach"
			full := filepath.Join(base, rel)
			candidates = append(candidates, full)
			if m.Reader.Exists(full) {
				return full, candidates, nil
			}
		}
	}

	rel := filepath.Join(segments...) + ".mach"
	for _, sp := range m.SearchPaths {
		full := filepath.Join(sp, rel)
		candidates = append(candidates, full)
		if m.Reader.Exists(full) {
			return full, candidates, nil
		}
	}

	return "", candidates, &NotFoundError{Path: canonicalName(segments), Candidates: candidates}
}

// Load resolves, parses, and caches the module named by segments (a
// dotted `use` path), recursively loading its own `use` dependencies.
// A second request for the same canonical name returns the cached
// Module without re-parsing.
func (m *Manager) Load(segments []string) (*Module, error) {
	name := canonicalName(segments)

	for _, inProgress := range m.loadStack {
		if inProgress == name {
			chain := append(append([]string{}, m.loadStack...), name)
			err := &CircularDependencyError{Chain: chain}
			m.Sink.Add(diag.Diagnostic{Level: diag.LevelError, Code: diag.MOD002, Message: err.Error()})
			return nil, err
		}
	}

	if mod, ok := m.cache[name]; ok {
		return mod, nil
	}

	path, _, err := m.resolvePath(segments)
	if err != nil {
		m.Sink.Add(diag.Diagnostic{Level: diag.LevelError, Code: diag.MOD001, Message: err.Error()})
		return nil, err
	}

	src, err := m.Reader.ReadFile(path)
	if err != nil {
		m.Sink.Add(diag.Diagnostic{Level: diag.LevelError, Code: diag.MOD001, File: path, Message: err.Error()})
		return nil, err
	}

	m.loadStack = append(m.loadStack, name)
	defer func() { m.loadStack = m.loadStack[:len(m.loadStack)-1] }()

	p := parser.NewFromSource(src, path, m.Sink)
	file := p.ParseFile(path)

	mod := &Module{Name: name, FilePath: path, AST: file, IsParsed: true}
	// Cached before recursing into deps, but while name is still on
	// loadStack — a `use` cycle re-enters Load and hits the loadStack
	// check above before this cache entry is ever consulted.
	m.cache[name] = mod

	for _, stmt := range file.Stmts {
		use, ok := stmt.(*ast.UseDecl)
		if !ok {
			continue
		}
		mod.Deps = append(mod.Deps, canonicalName(use.Path))
		if _, err := m.Load(use.Path); err != nil {
			return mod, err
		}
	}

	return mod, nil
}

// Get returns the cached module named by its canonical dotted name.
func (m *Manager) Get(name string) (*Module, bool) {
	mod, ok := m.cache[name]
	return mod, ok
}

// All returns every module currently loaded.
func (m *Manager) All() map[string]*Module {
	return m.cache
}

// TopologicalSort returns every loaded module's canonical name ordered
// so a module never precedes one of its `use` dependencies. Load
// already rejects cycles, so a plain depth-first postorder suffices.
func (m *Manager) TopologicalSort() []string {
	visited := make(map[string]bool)
	var order []string

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		if mod, ok := m.cache[name]; ok {
			for _, dep := range mod.Deps {
				visit(dep)
			}
		}
		order = append(order, name)
	}

	names := make([]string, 0, len(m.cache))
	for name := range m.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		visit(name)
	}
	return order
}
