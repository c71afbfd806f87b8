package domain

import "slices"

// Command is a single process invocation.
type Command struct {
	// Args holds the program name followed by its arguments.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds "KEY=VALUE" entries layered over the inherited environment.
	Env []string
	// Outputs lists the files the command writes. Their directories are created before it runs.
	Outputs []string
}

func (c Command) clone() Command {
	return Command{
		Args:    slices.Clone(c.Args),
		Dir:     c.Dir,
		Env:     slices.Clone(c.Env),
		Outputs: slices.Clone(c.Outputs),
	}
}

// BuildStep is a constructed but not yet executed unit of toolchain work.
// It is immutable once created.
type BuildStep struct {
	label string
	cmd   Command
	err   error
}

// NewBuildStep creates a step that runs cmd.
func NewBuildStep(label string, cmd Command) BuildStep {
	return BuildStep{label: label, cmd: cmd.clone()}
}

// NewFailedStep creates a step that fails with err when run.
// It is used when a step cannot be expressed for a platform.
func NewFailedStep(label string, err error) BuildStep {
	return BuildStep{label: label, err: err}
}

// Label returns the human readable label used for reporting.
func (s BuildStep) Label() string {
	return s.label
}

// Command returns a copy of the step's command.
func (s BuildStep) Command() Command {
	return s.cmd.clone()
}

// Err returns the deferred construction error, if any.
func (s BuildStep) Err() error {
	return s.err
}
