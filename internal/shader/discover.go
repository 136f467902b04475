package shader

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ResolveCompiler looks the compiler up on PATH (or checks it directly when
// ref contains a path separator). An empty ref means DefaultCompiler.
func ResolveCompiler(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		ref = DefaultCompiler
	}
	path, err := exec.LookPath(ref)
	if err != nil {
		return "", &CompilerNotFoundError{Ref: ref, Cause: err}
	}
	return path, nil
}

// Discover lists dir (non-recursive) and returns the absolute paths of every
// entry whose extension equals ext.
//
// The order is the directory listing order reported by os.ReadDir, which is
// sorted by file name. Only the name is inspected: no exclusion lists and no
// descent into subdirectories.
func Discover(dir, ext string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, shaderDirError(dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, shaderDirError(abs, err)
	}

	sources := make([]string, 0, len(entries))
	for _, e := range entries {
		if hasExtension(e.Name(), ext) {
			sources = append(sources, filepath.Join(abs, e.Name()))
		}
	}
	return sources, nil
}

// hasExtension compares the final dot-separated component of name with ext.
// A name without any dot has no extension.
func hasExtension(name, ext string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	return name[i+1:] == ext
}
