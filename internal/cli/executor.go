package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shaderbuild/internal/logging"
	"shaderbuild/internal/shader"
	"shaderbuild/internal/trace"
)

// BatchCompiler is the minimal engine interface the CLI wires into.
//
// It lets tests prove exit-code mapping (including panic) without
// depending on a real compiler.
type BatchCompiler interface {
	CompileAll(ctx context.Context, compilerRef, shaderDir string) (*shader.BatchResult, error)
}

type Result struct {
	ExitCode int
	RunID    string
	Batch    *shader.BatchResult
	Trace    trace.BatchTrace
}

// Execute compiles the shaders described by inv with the default compiler driver.
func Execute(ctx context.Context, inv Invocation, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := trace.NewRecorder()
	runID := uuid.NewString()

	c := shader.NewCompiler(logging.WithRun(logger, runID))
	c.Sink = rec
	res, err := ExecuteWithCompiler(ctx, inv, logger, c, runID)
	res.Trace = rec.Trace(compilerPath(res.Batch, inv.Glslang), inv.ShaderDir)
	reportTrace(logging.WithRun(logger, runID), res, err)
	return res, err
}

// reportTrace logs the batch outcome from its trace. A trace that breaks the
// fail-fast ordering is logged as a warning and does not change the result.
func reportTrace(log *zap.Logger, res Result, err error) {
	if verr := res.Trace.Validate(); verr != nil {
		log.Warn("inconsistent batch trace", zap.Error(verr))
	}
	s := res.Trace.Summary()
	if err != nil {
		log.Error("shader batch failed",
			zap.Int("compiled", s.Compiled),
			zap.Int("failed", s.Failed),
			zap.Int("exit_code", res.ExitCode),
		)
		return
	}
	log.Info("shaders compiled",
		zap.String("shader_dir", res.Trace.ShaderDir),
		zap.Int("compiled", s.Compiled),
		zap.Strings("outputs", res.Trace.Outputs()),
	)
}

// ExecuteWithCompiler maps a canonical Invocation to a batch run and
// translates the outcome to a semantic exit code.
func ExecuteWithCompiler(ctx context.Context, inv Invocation, logger *zap.Logger, compiler BatchCompiler, runID string) (res Result, execErr error) {
	res.ExitCode = ExitInternalError
	res.RunID = runID
	if compiler == nil {
		return res, fmt.Errorf("nil compiler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logging.WithRun(logger, runID)

	defer func() {
		if r := recover(); r != nil {
			res.ExitCode = ExitInternalError
			res.Batch = nil
			execErr = fmt.Errorf("panic: %v", r)
			log.Error("batch aborted", zap.Error(execErr))
		}
	}()

	log.Debug("starting shader batch",
		zap.String("compiler", inv.Glslang),
		zap.String("shader_dir", inv.ShaderDir),
	)

	batch, err := compiler.CompileAll(ctx, inv.Glslang, inv.ShaderDir)
	res.Batch = batch
	res.ExitCode = ExitCode(err)
	if err != nil {
		return res, err
	}
	return res, nil
}

func compilerPath(batch *shader.BatchResult, ref string) string {
	if batch != nil && batch.Compiler != "" {
		return batch.Compiler
	}
	return ref
}
