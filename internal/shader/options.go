// Package shader compiles a directory of compute shaders by invoking an
// external GLSL compiler once per source file.
//
// The batch is strictly sequential and fail-fast:
//  1. Resolve the compiler executable (fail before touching the directory)
//  2. List the shader directory (non-recursive) and select sources by extension
//  3. Invoke the compiler per source, writing <source><suffix> beside it
//  4. Stop at the first non-zero exit, leaving earlier outputs in place
package shader

// DefaultCompiler is resolved through PATH when no compiler is given.
const DefaultCompiler = "glslang"

// Options is the fixed argument template applied to every source.
type Options struct {
	// Extension selects sources: the text after the last '.' of the file name.
	Extension string

	// TargetEnv is passed as --target-env.
	TargetEnv string

	// OutputSuffix is appended to the source path to form the output path.
	OutputSuffix string
}

// DefaultOptions compiles *.comp for Vulkan 1.3 into *.comp.spv.
func DefaultOptions() Options {
	return Options{
		Extension:    "comp",
		TargetEnv:    "vulkan1.3",
		OutputSuffix: ".spv",
	}
}

// Invocation is one compiler run for one source file.
type Invocation struct {
	Compiler string
	Source   string
	Output   string
	Options  Options
}

// NewInvocation derives the output path from the source path.
func NewInvocation(compiler, source string, opts Options) Invocation {
	return Invocation{
		Compiler: compiler,
		Source:   source,
		Output:   source + opts.OutputSuffix,
		Options:  opts,
	}
}

// Args returns the full argument vector, compiler first.
func (inv Invocation) Args() []string {
	return []string{
		inv.Compiler,
		"-V", inv.Source,
		"--target-env", inv.Options.TargetEnv,
		"-o", inv.Output,
	}
}
