package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// commandDepth is how far the command's source directory (cmd/shaderbuild)
// sits below the module root.
const commandDepth = 2

// AnchorCandidates lists the directories that may hold ShaderDirName, in
// order: the module root derived from the command's source directory, then
// the directory of the running executable.
func AnchorCandidates(sourceDir, exeDir string) []string {
	var out []string
	if sourceDir != "" && filepath.IsAbs(sourceDir) {
		root := filepath.Clean(sourceDir)
		for i := 0; i < commandDepth; i++ {
			root = filepath.Dir(root)
		}
		out = append(out, root)
	}
	if exeDir != "" && filepath.IsAbs(exeDir) {
		out = append(out, filepath.Clean(exeDir))
	}
	return out
}

// ResolveAnchor picks the anchor directory for the tool. The invoker's
// working directory is never consulted.
func ResolveAnchor(sourceDir, exeDir string) (string, error) {
	return FindAnchor(AnchorCandidates(sourceDir, exeDir)...)
}

// FindAnchor returns the first candidate that directly contains a
// ShaderDirName subdirectory. Ancestors are not searched.
//
// Relative or empty candidates are ignored.
func FindAnchor(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" || !filepath.IsAbs(c) {
			continue
		}
		dir := filepath.Clean(c)
		fi, err := os.Stat(filepath.Join(dir, ShaderDirName))
		if err == nil && fi.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no %q directory in %q", ShaderDirName, candidates)
}

// ExecutableDir is the directory holding the running binary, symlinks resolved.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
