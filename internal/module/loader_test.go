package module_test

import (
	"errors"
	"testing"

	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/module"
	"github.com/stretchr/testify/require"
)

type memReader struct{ files map[string]string }

func (m *memReader) ReadFile(path string) ([]byte, error) {
	if src, ok := m.files[path]; ok {
		return []byte(src), nil
	}
	return nil, errors.New("no such file: " + path)
}

func (m *memReader) Exists(path string) bool {
	_, ok := m.files[path]
	return ok
}

func TestLoadSingleModuleNoDeps(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "fun main(): i32 { ret 0; }\n",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)

	mod, err := mgr.Load([]string{"main"})
	require.NoError(t, err)
	require.True(t, mod.IsParsed)
	require.False(t, sink.HasErrors())
}

func TestLoadResolvesTransitiveDeps(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "use util;\nfun main(): i32 { ret 0; }\n",
		"src/util.mach": "fun helper(): i32 { ret 1; }\n",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)

	mod, err := mgr.Load([]string{"main"})
	require.NoError(t, err)
	require.Equal(t, []string{"util"}, mod.Deps)

	_, ok := mgr.Get("util")
	require.True(t, ok)
}

func TestLoadIsIdempotentByCanonicalName(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/a.mach": "use b;\nuse b;\n",
		"src/b.mach": "",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)

	_, err := mgr.Load([]string{"a"})
	require.NoError(t, err)
	require.Len(t, mgr.All(), 2)
}

func TestLoadDetectsCircularDependency(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/x.mach": "use y;\n",
		"src/y.mach": "use x;\n",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)

	_, err := mgr.Load([]string{"x"})
	require.Error(t, err)
	var cycle *module.CircularDependencyError
	require.ErrorAs(t, err, &cycle)
}

func TestLoadModuleNotFound(t *testing.T) {
	reader := &memReader{files: map[string]string{}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)

	_, err := mgr.Load([]string{"missing"})
	require.Error(t, err)
	var notFound *module.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAliasResolvesBeforeSearchPaths(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"vendor/lib/io.mach": "fun read(): i32 { ret 0; }\n",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, map[string]string{"lib": "vendor/lib"}, sink)

	mod, err := mgr.Load([]string{"lib", "io"})
	require.NoError(t, err)
	require.Equal(t, "vendor/lib/io.mach", mod.FilePath)
}

func TestTopologicalSortOrdersDepsFirst(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "use util;\n",
		"src/util.mach": "use base;\n",
		"src/base.mach": "",
	}}
	sink := diag.NewSink()
	mgr := module.NewManager(reader, []string{"src"}, nil, sink)
	_, err := mgr.Load([]string{"main"})
	require.NoError(t, err)

	order := mgr.TopologicalSort()
	pos := func(name string) int {
		for i, n := range order {
			if n == name {
				return i
			}
		}
		return -1
	}
	require.Less(t, pos("base"), pos("util"))
	require.Less(t, pos("util"), pos("main"))
}
