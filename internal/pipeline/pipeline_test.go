package pipeline_test

import (
	"errors"
	"testing"

	"github.com/octalide/mach/internal/diag"
	"github.com/octalide/mach/internal/pipeline"
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

func TestRunSingleModuleCleanBuild(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "fun main(): i32 { ret 0; }\n",
	}}
	sink := diag.NewSink()
	d := pipeline.NewDriver(reader, sink)

	res, err := d.Run(pipeline.BuildOptions{InputFile: "main.mach", IncludePaths: []string{"src"}})
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Contains(t, res.Files, "main")
	require.Contains(t, res.Modules, "main")
}

func TestRunResolvesTransitiveModuleAndForwardReference(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "use util: util;\nfun main(): i32 { ret util.helper(); }\n",
		"src/util.mach": "fun helper(): i32 { ret 1; }\n",
	}}
	sink := diag.NewSink()
	d := pipeline.NewDriver(reader, sink)

	res, err := d.Run(pipeline.BuildOptions{InputFile: "main.mach", IncludePaths: []string{"src"}})
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Contains(t, res.Modules, "util")
}

func TestRunDrainsGenericSpecializations(t *testing.T) {
	reader := &memReader{files: map[string]string{
		"src/main.mach": "fun id<T>(x: T): T { ret x; }\nval a: i32 = id<i32>(3);\nval b: i64 = id<i64>(4);\n",
	}}
	sink := diag.NewSink()
	d := pipeline.NewDriver(reader, sink)

	res, err := d.Run(pipeline.BuildOptions{InputFile: "main.mach", IncludePaths: []string{"src"}})
	require.NoError(t, err)
	require.False(t, sink.HasErrors())
	require.Len(t, res.Specializations, 2)
}

func TestRunUnresolvableEntryReturnsError(t *testing.T) {
	reader := &memReader{files: map[string]string{}}
	sink := diag.NewSink()
	d := pipeline.NewDriver(reader, sink)

	_, err := d.Run(pipeline.BuildOptions{InputFile: "main.mach", IncludePaths: []string{"src"}})
	require.Error(t, err)
}

func TestProjectConfigFillsUnsetOptionsOnly(t *testing.T) {
	cfg, err := pipeline.LoadProjectConfig([]byte("include_paths: [src, vendor]\naliases:\n  lib: vendor/lib\n"))
	require.NoError(t, err)

	opts := cfg.Apply(pipeline.BuildOptions{InputFile: "main.mach"})
	require.Equal(t, []string{"src", "vendor"}, opts.IncludePaths)
	require.Equal(t, "vendor/lib", opts.Aliases["lib"])

	explicit := cfg.Apply(pipeline.BuildOptions{InputFile: "main.mach", IncludePaths: []string{"only"}})
	require.Equal(t, []string{"only"}, explicit.IncludePaths)
}
