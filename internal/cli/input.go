package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"shaderbuild/internal/shader"
)

const (
	ExitSuccess           = 0
	ExitCompileFailure    = 1
	ExitInvalidInvocation = 2
	ExitConfigError       = 3
	ExitInternalError     = 4
)

// ShaderDirName is the directory, relative to the anchor, holding the sources.
const ShaderDirName = "shaders"

// Invocation is the canonical description of a run.
//
// AnchorDir is the directory the tool belongs to. It is supplied by the
// caller and must be absolute; the invoker's working directory never
// influences which shaders are compiled.
type Invocation struct {
	Glslang   string
	AnchorDir string
	ShaderDir string

	// Help is set when --help was requested; nothing is compiled.
	Help bool
}

type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func invalidInvocationf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitInvalidInvocation, Message: fmt.Sprintf(format, args...)}
}

func newCommand(glslang *string, run func()) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shaderbuild",
		Short: "Compile compute shaders to SPIR-V",
		Long: `shaderbuild compiles every *.comp file in the shaders directory with
glslang, writing <file>.spv next to each source. The first compiler error
stops the build.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			run()
			return nil
		},
	}
	cmd.Flags().StringVar(glslang, "glslang", shader.DefaultCompiler, "Path to glslangValidator to use")
	return cmd
}

// ParseInvocation parses CLI flags into a canonical Invocation.
//
// Help text, when requested, is written to out.
func ParseInvocation(args []string, anchorDir string, out io.Writer) (Invocation, error) {
	if out == nil {
		out = io.Discard
	}
	anchorDir = filepath.Clean(anchorDir)
	if anchorDir == "" || anchorDir == "." {
		return Invocation{}, invalidInvocationf("anchor directory is required")
	}
	if !filepath.IsAbs(anchorDir) {
		return Invocation{}, invalidInvocationf("anchor directory must be an absolute path (got %q)", anchorDir)
	}

	var glslang string
	ran := false
	cmd := newCommand(&glslang, func() { ran = true })
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)

	if err := cmd.Execute(); err != nil {
		return Invocation{}, invalidInvocationf("%v", err)
	}

	inv := Invocation{
		Glslang:   glslang,
		AnchorDir: anchorDir,
		ShaderDir: filepath.Join(anchorDir, ShaderDirName),
		Help:      !ran,
	}
	if strings.TrimSpace(inv.Glslang) == "" {
		inv.Glslang = shader.DefaultCompiler
	}
	return inv, nil
}

// ExitCode maps an error from ParseInvocation or Execute to a semantic exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) && invErr != nil {
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	}
	switch {
	case errors.Is(err, shader.ErrCompilerNotFound), errors.Is(err, shader.ErrShaderDir):
		return ExitConfigError
	case errors.Is(err, shader.ErrCompileFailed):
		return ExitCompileFailure
	default:
		return ExitInternalError
	}
}
