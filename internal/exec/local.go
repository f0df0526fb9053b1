package exec

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/rileyhilliard/juju-units/internal/errors"
)

// Runner runs a program with arguments and captures its output.
// A non-zero exit is reported through exitCode with a nil error; err is only
// set when the program could not be run at all (exitCode is then -1).
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error)
}

// WaitDelay bounds how long Run keeps reading output after the program was
// killed or exited.
const WaitDelay = 3 * time.Second

// LocalRunner runs programs on this machine. Arguments are passed as argv,
// never through a shell.
type LocalRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string

	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// NewLocalRunner returns a runner for the current directory and environment.
func NewLocalRunner() *LocalRunner {
	return &LocalRunner{}
}

// Run implements Runner.
func (r *LocalRunner) Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error) {
	command := exec.CommandContext(ctx, name, args...)
	// Grandchildren holding the pipes open must not outlive a cancelled ctx
	command.WaitDelay = WaitDelay

	if r.Dir != "" {
		command.Dir = r.Dir
	}
	if r.Env != nil {
		command.Env = r.Env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	command.Stdout = &stdoutBuf
	command.Stderr = &stderrBuf

	runErr := command.Run()
	if runErr != nil {
		// Killed by the context: report it as a failure to run, not an exit code
		if ctxErr := ctx.Err(); ctxErr != nil {
			return stdoutBuf.Bytes(), stderrBuf.Bytes(), -1, errors.WrapWithCode(ctxErr, errors.ErrExec,
				"'"+name+"' didn't finish in time",
				"Raise --timeout, or check the command isn't waiting for input")
		}
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return stdoutBuf.Bytes(), stderrBuf.Bytes(), exitErr.ExitCode(), nil
		}
		return nil, nil, -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run '"+name+"' locally",
			"Make sure it's installed and on your PATH, or point --juju at it.")
	}

	return stdoutBuf.Bytes(), stderrBuf.Bytes(), 0, nil
}

var _ Runner = (*LocalRunner)(nil)
