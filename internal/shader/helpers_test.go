package shader

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeCompiler is a /bin/sh stand-in for glslang. It appends each argument
// vector to a log file, fails for the source whose base name equals failOn,
// and otherwise copies the source to the -o path.
type fakeCompiler struct {
	Path string
	Log  string
}

const fakeFailureOutput = "ERROR: bad shader\nstderr detail\n"

func writeFakeCompiler(t *testing.T, name, failOn string) fakeCompiler {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler requires /bin/sh")
	}
	dir := t.TempDir()
	logPath := filepath.Join(dir, "invocations.log")
	// $1=-V $2=source $3=--target-env $4=env $5=-o $6=output
	script := `#!/bin/sh
printf '%s\n' "$*" >> '` + logPath + `'
if [ "${2##*/}" = '` + failOn + `' ]; then
  echo "ERROR: bad shader"
  echo "stderr detail" 1>&2
  exit 2
fi
cat "$2" > "$6" || exit 1
echo "$2"
`

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return fakeCompiler{Path: path, Log: logPath}
}

// Invocations returns the logged argument vectors (without argv[0]).
func (f fakeCompiler) Invocations(t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(f.Log)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("#version 450\n// "+n+"\n"), 0o644))
	}
}
