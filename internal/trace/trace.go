// Package trace keeps an in-memory record of what a shader batch did.
//
// The trace is observational only and must never affect compilation.
package trace

import (
	"errors"
	"fmt"
)

// EventKind discriminates Event.
type EventKind string

const (
	EventShaderCompiled EventKind = "ShaderCompiled"
	EventShaderFailed   EventKind = "ShaderFailed"
)

// Event is one compiler invocation outcome, in invocation order.
type Event struct {
	Kind EventKind

	// Source is the absolute path of the compiled source.
	Source string

	// Output is the artifact path the compiler was asked to write.
	Output string

	// ExitCode of the compiler. Start failures are recorded as -1.
	ExitCode int
}

// BatchTrace is the ordered record of a single batch.
type BatchTrace struct {
	Compiler  string
	ShaderDir string
	Events    []Event
}

// Validate checks basic invariants and returns a descriptive error.
func (t *BatchTrace) Validate() error {
	if t == nil {
		return errors.New("trace is nil")
	}
	failed := -1
	for i, e := range t.Events {
		switch e.Kind {
		case EventShaderCompiled:
			if e.ExitCode != 0 {
				return fmt.Errorf("events[%d]: compiled shader with exit code %d", i, e.ExitCode)
			}
		case EventShaderFailed:
			if failed >= 0 {
				return fmt.Errorf("events[%d]: second failure after events[%d]", i, failed)
			}
			failed = i
		case "":
			return fmt.Errorf("events[%d].kind is required", i)
		default:
			return fmt.Errorf("events[%d]: unknown kind %q", i, e.Kind)
		}
		if e.Source == "" {
			return fmt.Errorf("events[%d].source is required", i)
		}
	}
	if failed >= 0 && failed != len(t.Events)-1 {
		return fmt.Errorf("events[%d]: invocations continued after failure", failed+1)
	}
	return nil
}

// Summary counts events per kind.
type Summary struct {
	Compiled int
	Failed   int
}

func (t BatchTrace) Summary() Summary {
	var s Summary
	for _, e := range t.Events {
		switch e.Kind {
		case EventShaderCompiled:
			s.Compiled++
		case EventShaderFailed:
			s.Failed++
		}
	}
	return s
}

// Outputs returns the artifact paths of successful invocations.
func (t BatchTrace) Outputs() []string {
	var out []string
	for _, e := range t.Events {
		if e.Kind == EventShaderCompiled {
			out = append(out, e.Output)
		}
	}
	return out
}
