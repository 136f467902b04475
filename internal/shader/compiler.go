package shader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shaderbuild/internal/trace"
)

// BatchResult summarizes a batch. It is informational: success is a nil error.
type BatchResult struct {
	// Compiler is the resolved executable path.
	Compiler string

	// Sources is every selected source, in invocation order.
	Sources []string

	// Outputs are the artifacts written by successful invocations so far.
	Outputs []string
}

// Compiler drives the external compiler over a shader directory.
type Compiler struct {
	Options  Options
	Executor *Executor
	Logger   *zap.Logger

	// Sink receives one event per invocation. Optional.
	Sink trace.Sink
}

// NewCompiler creates a Compiler with DefaultOptions. A nil logger is replaced
// with a no-op logger.
func NewCompiler(logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		Options:  DefaultOptions(),
		Executor: NewExecutor(),
		Logger:   logger,
		Sink:     trace.NopSink{},
	}
}

// CompileAll compiles every matching source in shaderDir with compilerRef.
//
// The compiler is resolved before the directory is read. Invocations run one
// at a time in listing order; the first failure stops the batch and is
// returned as a *CompileError whose message is the compiler's output. Outputs
// of earlier invocations are left on disk.
//
// The returned BatchResult is non-nil whenever the compiler was resolved.
func (c *Compiler) CompileAll(ctx context.Context, compilerRef, shaderDir string) (*BatchResult, error) {
	bin, err := ResolveCompiler(compilerRef)
	if err != nil {
		return nil, err
	}
	res := &BatchResult{Compiler: bin}

	sources, err := Discover(shaderDir, c.Options.Extension)
	if err != nil {
		return res, err
	}
	res.Sources = sources

	c.Logger.Debug("shaders discovered",
		zap.String("compiler", bin),
		zap.String("shader_dir", shaderDir),
		zap.Int("count", len(sources)),
	)

	for _, src := range sources {
		inv := NewInvocation(bin, src, c.Options)
		if err := c.compileOne(ctx, inv); err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, inv.Output)
	}
	return res, nil
}

func (c *Compiler) compileOne(ctx context.Context, inv Invocation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("execution cancelled: %w", err)
	}
	c.Logger.Info("compiling shader", zap.Strings("args", inv.Args()))

	start := time.Now()
	result, err := c.Executor.Execute(ctx, inv.Args())
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		trace.SafeRecord(c.Sink, trace.Event{Kind: trace.EventShaderFailed, Source: inv.Source, Output: inv.Output, ExitCode: -1})
		return &CompileError{Source: inv.Source, Code: "StartFailed", ExitCode: -1, Cause: err}
	}

	if result.ExitCode != 0 {
		c.Logger.Error("shader compilation failed",
			zap.String("source", inv.Source),
			zap.Int("exit_code", result.ExitCode),
			zap.Duration("duration", time.Since(start)),
		)
		trace.SafeRecord(c.Sink, trace.Event{Kind: trace.EventShaderFailed, Source: inv.Source, Output: inv.Output, ExitCode: result.ExitCode})
		return &CompileError{
			Source:   inv.Source,
			Code:     "NonZeroExit",
			ExitCode: result.ExitCode,
			Output:   string(result.Output),
		}
	}

	c.Logger.Debug("shader compiled",
		zap.String("source", inv.Source),
		zap.String("output", inv.Output),
		zap.Duration("duration", time.Since(start)),
	)
	trace.SafeRecord(c.Sink, trace.Event{Kind: trace.EventShaderCompiled, Source: inv.Source, Output: inv.Output})
	return nil
}
