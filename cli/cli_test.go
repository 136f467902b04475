package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	icl "shaderbuild/internal/cli"
)

// newRepo lays out an anchor directory with a shaders/ subdirectory holding
// the named files, and returns the anchor.
func newRepo(t *testing.T, files ...string) string {
	t.Helper()
	anchor := t.TempDir()
	dir := filepath.Join(anchor, "shaders")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("#version 450\n"), 0o644))
	}
	return anchor
}

// fakeGlslang emulates glslang's contract: -V <src> --target-env <env> -o <out>.
func fakeGlslang(t *testing.T, failOn string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler requires /bin/sh")
	}
	script := `#!/bin/sh
[ "$1" = "-V" ] && [ "$3" = "--target-env" ] && [ "$4" = "vulkan1.3" ] && [ "$5" = "-o" ] || { echo "bad args: $*"; exit 64; }
if [ "${2##*/}" = '` + failOn + `' ]; then
  echo "ERROR: $2:1: '' :  syntax error"
  echo "1 compilation errors.  No code generated."
  exit 2
fi
printf 'SPIRV' > "$6"
echo "$2"
`
	path := filepath.Join(t.TempDir(), "glslangValidator")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestRun_CompilesEveryComputeShader(t *testing.T) {
	anchor := newRepo(t, "a.comp", "b.comp", "notes.txt")
	glslang := fakeGlslang(t, "")

	var stdout, stderr bytes.Buffer
	res, err := icl.Run(context.Background(), []string{"--glslang", glslang}, anchor, &stdout, &stderr)
	require.NoError(t, err)
	require.Equal(t, icl.ExitSuccess, res.ExitCode)

	require.Equal(t,
		[]string{"a.comp", "a.comp.spv", "b.comp", "b.comp.spv", "notes.txt"},
		listDir(t, filepath.Join(anchor, "shaders")),
	)
	spv, err := os.ReadFile(filepath.Join(anchor, "shaders", "a.comp.spv"))
	require.NoError(t, err)
	require.Equal(t, "SPIRV", string(spv))

	// Each argument vector is echoed to the log before the compiler runs.
	require.Contains(t, stderr.String(), "compiling shader")
	require.Contains(t, stderr.String(), filepath.Join(anchor, "shaders", "b.comp.spv"))
	require.Empty(t, stdout.String())
}

func TestRun_IdenticalRunsIdenticalArtifacts(t *testing.T) {
	anchor := newRepo(t, "a.comp")
	glslang := fakeGlslang(t, "")
	args := []string{"--glslang", glslang}

	res1, err := icl.Run(context.Background(), args, anchor, nil, &bytes.Buffer{})
	require.NoError(t, err)
	out1, err := os.ReadFile(filepath.Join(anchor, "shaders", "a.comp.spv"))
	require.NoError(t, err)

	res2, err := icl.Run(context.Background(), args, anchor, nil, &bytes.Buffer{})
	require.NoError(t, err)
	out2, err := os.ReadFile(filepath.Join(anchor, "shaders", "a.comp.spv"))
	require.NoError(t, err)

	require.Equal(t, res1.ExitCode, res2.ExitCode)
	require.Equal(t, out1, out2)
	require.NotEqual(t, res1.RunID, res2.RunID)

	// The previous artifact is not selected as a source on the second run.
	require.Equal(t, []string{filepath.Join(anchor, "shaders", "a.comp")}, res2.Batch.Sources)
}

func TestRun_CompileFailureExitsWithCompilerOutput(t *testing.T) {
	anchor := newRepo(t, "a.comp", "b.comp", "c.comp")
	glslang := fakeGlslang(t, "b.comp")
	bPath := filepath.Join(anchor, "shaders", "b.comp")

	res, err := icl.Run(context.Background(), []string{"--glslang", glslang}, anchor, nil, &bytes.Buffer{})
	require.Equal(t, icl.ExitCompileFailure, res.ExitCode)
	require.EqualError(t, err, "ERROR: "+bPath+":1: '' :  syntax error\n1 compilation errors.  No code generated.\n")

	require.Equal(t,
		[]string{"a.comp", "a.comp.spv", "b.comp", "c.comp"},
		listDir(t, filepath.Join(anchor, "shaders")),
	)
}

func TestRun_MissingCompiler(t *testing.T) {
	anchor := newRepo(t, "a.comp")
	missing := filepath.Join(t.TempDir(), "glslang")

	res, err := icl.Run(context.Background(), []string{"--glslang", missing}, anchor, nil, &bytes.Buffer{})
	require.Equal(t, icl.ExitConfigError, res.ExitCode)
	require.EqualError(t, err, "cannot find glslangValidator "+missing)
	require.Equal(t, []string{"a.comp"}, listDir(t, filepath.Join(anchor, "shaders")))
}

func TestRun_DefaultCompilerFromPath(t *testing.T) {
	anchor := newRepo(t, "a.comp")
	glslang := fakeGlslang(t, "")
	alias := filepath.Join(filepath.Dir(glslang), "glslang")
	require.NoError(t, os.Symlink(glslang, alias))
	t.Setenv("PATH", filepath.Dir(glslang)+string(os.PathListSeparator)+os.Getenv("PATH"))

	res, err := icl.Run(context.Background(), nil, anchor, nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, icl.ExitSuccess, res.ExitCode)
	require.Equal(t, alias, res.Batch.Compiler)
}

func TestRun_EmptyShaderDir(t *testing.T) {
	anchor := newRepo(t)
	glslang := fakeGlslang(t, "")

	res, err := icl.Run(context.Background(), []string{"--glslang", glslang}, anchor, nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, icl.ExitSuccess, res.ExitCode)
	require.Empty(t, res.Trace.Events)
}

func TestRun_HelpDoesNotCompile(t *testing.T) {
	anchor := newRepo(t, "a.comp")

	var stdout bytes.Buffer
	res, err := icl.Run(context.Background(), []string{"-h"}, anchor, &stdout, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, icl.ExitSuccess, res.ExitCode)
	require.Contains(t, stdout.String(), "shaderbuild")
	require.Equal(t, []string{"a.comp"}, listDir(t, filepath.Join(anchor, "shaders")))
}

func TestRun_InvalidInvocation(t *testing.T) {
	anchor := newRepo(t, "a.comp")

	res, err := icl.Run(context.Background(), []string{"--target-env", "vulkan1.2"}, anchor, nil, &bytes.Buffer{})
	require.Error(t, err)
	require.Equal(t, icl.ExitInvalidInvocation, res.ExitCode)
}
