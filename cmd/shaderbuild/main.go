// Command shaderbuild compiles the repository's compute shaders to SPIR-V.
//
// Usage:
//
//	shaderbuild [--glslang <path>]
//
// Every *.comp file in the shaders directory next to the tool is compiled
// with glslang into a sibling <file>.spv.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"shaderbuild/internal/cli"
)

func main() {
	anchor, err := cli.ResolveAnchor(sourceDir(), cli.ExecutableDir())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitConfigError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	result, err := cli.Run(ctx, os.Args[1:], anchor, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	os.Exit(result.ExitCode)
}

// sourceDir is where this file was compiled from. Under `go run` the binary
// lives in a temporary build directory, so this is the only way back to the
// repository.
func sourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}
