// Package runner executes build steps and records their failures.
package runner

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/bake/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner runs one build step at a time.
type Runner struct {
	executor ports.Executor
	tracer   ports.Tracer
}

// New creates a Runner.
func New(executor ports.Executor, tracer ports.Tracer) *Runner {
	return &Runner{executor: executor, tracer: tracer}
}

// Run executes step synchronously and returns its result.
// Unsuccessful results are appended to log. Steps are never retried.
func (r *Runner) Run(ctx context.Context, step domain.BuildStep, log *domain.FailureLog) domain.ProcessResult {
	ctx, span := r.tracer.Start(ctx, step.Label())
	defer span.End()

	if args := step.Command().Args; len(args) > 0 {
		span.SetAttribute("bake.tool", args[0])
	}

	var out bytes.Buffer
	err := r.execute(ctx, step, io.MultiWriter(&out, span))
	if err == nil {
		return domain.ProcessResult{Label: step.Label(), Success: true, Output: out.String()}
	}

	span.RecordError(err)
	res := domain.ProcessResult{
		Label:  step.Label(),
		Output: diagnostics(out.String(), err),
	}
	if log != nil {
		log.Append(res)
	}
	return res
}

func (r *Runner) execute(ctx context.Context, step domain.BuildStep, w io.Writer) error {
	if err := step.Err(); err != nil {
		return err
	}

	cmd := step.Command()
	if len(cmd.Args) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrEmptyCommand, "failed to run step"), "label", step.Label())
	}

	for _, output := range cmd.Outputs {
		dir := filepath.Dir(output)
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dir)
		}
	}

	return r.executor.Execute(ctx, cmd, w, w)
}

// diagnostics joins captured tool output with the error that ended the step.
func diagnostics(output string, err error) string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return err.Error()
	}
	return output + "\n" + err.Error()
}
