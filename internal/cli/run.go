package cli

import (
	"context"
	"io"

	"shaderbuild/internal/logging"
)

// Run is a high-level CLI entrypoint suitable for black-box tests.
// It accepts the argument slice (excluding argv[0]) and returns the semantic
// exit code plus any error. Help goes to stdout, logs to stderr.
func Run(ctx context.Context, args []string, anchorDir string, stdout, stderr io.Writer) (Result, error) {
	inv, err := ParseInvocation(args, anchorDir, stdout)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}
	if inv.Help {
		return Result{ExitCode: ExitSuccess}, nil
	}

	logger := logging.New(stderr, false)
	defer func() { _ = logger.Sync() }()
	return Execute(ctx, inv, logger)
}
