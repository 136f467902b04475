package shader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExecutionResult is the outcome of one compiler process.
type ExecutionResult struct {
	// Output is stdout and stderr interleaved in the order the compiler wrote them.
	Output []byte

	// ExitCode is 0 on success.
	ExitCode int
}

// Executor runs compiler processes one at a time.
//
// The child inherits the host environment so that the compiler can find its
// own runtime dependencies, and the caller's working directory, since every
// path it is given is absolute. It is placed in its own process group so
// that cancellation kills anything it spawned.
type Executor struct{}

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute runs args[0] with args[1:] and blocks until it exits.
//
// A non-zero exit is not an error here; it is reported through ExitCode.
// The returned error is reserved for start failures and cancellation.
func (e *Executor) Execute(ctx context.Context, args []string) (*ExecutionResult, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	cmd := exec.Command(args[0], args[1:]...)
	setProcessGroup(cmd)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start command: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		return nil, fmt.Errorf("execution cancelled: %w", ctx.Err())
	case err = <-done:
	}

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to execute command: %w", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return &ExecutionResult{
		Output:   out.Bytes(),
		ExitCode: exitCode,
	}, nil
}
