package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFakeCompiler writes a /bin/sh glslang stand-in. It fails with
// "<name>: syntax error" on stderr for the source named failOn and copies
// every other source to its -o path.
func writeFakeCompiler(t *testing.T, failOn string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler requires /bin/sh")
	}
	// $1=-V $2=source $3=--target-env $4=env $5=-o $6=output
	script := `#!/bin/sh
name="${2##*/}"
if [ "$name" = '` + failOn + `' ]; then
  echo "$name: syntax error" 1>&2
  exit 1
fi
cp "$2" "$6"
`
	path := filepath.Join(t.TempDir(), "glslang")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func writeShader(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#version 450\nvoid main() {}\n"), 0o644))
}
