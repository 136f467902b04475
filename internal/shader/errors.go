package shader

import (
	"errors"
	"fmt"
)

var (
	ErrCompilerNotFound = errors.New("compiler not found")
	ErrShaderDir        = errors.New("cannot list shader directory")
	ErrCompileFailed    = errors.New("shader compilation failed")
)

// CompilerNotFoundError is returned when the compiler reference does not
// resolve to an executable. It is raised before any shader is enumerated.
type CompilerNotFoundError struct {
	Ref   string
	Cause error
}

func (e *CompilerNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("cannot find glslangValidator %s", e.Ref)
}

func (e *CompilerNotFoundError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCompilerNotFound}
	}
	return []error{ErrCompilerNotFound, e.Cause}
}

// CompileError represents a single failed compiler invocation.
//
// Codes:
//   - "NonZeroExit": the compiler ran and reported failure; Output holds its
//     combined stdout and stderr.
//   - "StartFailed": the process could not be started or waited on.
type CompileError struct {
	Source   string
	Code     string
	ExitCode int
	Output   string
	Cause    error
}

// Error returns the compiler's captured output verbatim, so the caller sees
// exactly what the compiler said.
func (e *CompileError) Error() string {
	if e == nil {
		return ""
	}
	if e.Output != "" {
		return e.Output
	}
	if e.Cause != nil {
		return fmt.Sprintf("compile %s (%s): %v", e.Source, e.Code, e.Cause)
	}
	return fmt.Sprintf("compile %s (%s): exit status %d", e.Source, e.Code, e.ExitCode)
}

func (e *CompileError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCompileFailed}
	}
	return []error{ErrCompileFailed, e.Cause}
}

func shaderDirError(dir string, cause error) error {
	return fmt.Errorf("%w %s: %w", ErrShaderDir, dir, cause)
}
