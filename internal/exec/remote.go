package exec

import (
	"context"
	"strings"

	"github.com/rileyhilliard/juju-units/internal/errors"
	"github.com/rileyhilliard/juju-units/internal/util"
	"github.com/rileyhilliard/juju-units/pkg/sshutil"
)

// SSHRunner runs programs on a remote host over an established SSH client.
type SSHRunner struct {
	Client sshutil.SSHClient
}

// NewSSHRunner wraps an SSH client as a Runner.
func NewSSHRunner(client sshutil.SSHClient) *SSHRunner {
	return &SSHRunner{Client: client}
}

// Run implements Runner. The argv is shell-quoted into a single command line
// for the remote login shell.
func (r *SSHRunner) Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, exitCode int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, -1, errors.WrapWithCode(err, errors.ErrExec,
			"Remote command cancelled before it started", "")
	}

	cmdLine := BuildCommandLine(name, args...)

	type result struct {
		stdout, stderr []byte
		exitCode       int
		err            error
	}
	done := make(chan result, 1)
	go func() {
		o, e, code, runErr := r.Client.Exec(cmdLine)
		done <- result{o, e, code, runErr}
	}()

	select {
	case res := <-done:
		return res.stdout, res.stderr, res.exitCode, res.err
	case <-ctx.Done():
		// Closing the connection unblocks the pending session
		_ = r.Client.Close()
		return nil, nil, -1, errors.WrapWithCode(ctx.Err(), errors.ErrExec,
			"'"+name+"' on "+r.Client.GetHost()+" didn't finish in time",
			"Raise --timeout, or check the remote juju client responds")
	}
}

// ExplainNotFound implements NotFoundExplainer by probing the remote for name.
func (r *SSHRunner) ExplainNotFound(name string) string {
	result, err := ProbeCommandPath(r.Client, name)
	if err != nil {
		return ""
	}
	return GenerateSetupSuggestion(result, r.Client.GetHost())
}

// BuildCommandLine quotes name and args for a POSIX shell.
func BuildCommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, util.ShellQuote(name))
	for _, a := range args {
		parts = append(parts, util.ShellQuote(a))
	}
	return strings.Join(parts, " ")
}

var (
	_ Runner            = (*SSHRunner)(nil)
	_ NotFoundExplainer = (*SSHRunner)(nil)
)
