// Package testing provides a scripted Runner for tests that would otherwise
// shell out to juju.
package testing

import (
	"context"
	"strings"
	"sync"

	"github.com/rileyhilliard/juju-units/internal/exec"
)

// Response is what the fake returns for one command line.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Call records one invocation.
type Call struct {
	Name string
	Args []string
}

// CommandLine joins name and args with spaces.
func (c Call) CommandLine() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeRunner answers commands from a table keyed by the space-joined
// command line. Unknown commands exit 127 like a shell would.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call

	// Block, when set, makes Run wait for the context to be done.
	Block bool
}

// NewFakeRunner creates an empty fake.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On registers the response for a command line such as "juju status --format yaml".
func (f *FakeRunner) On(cmdLine string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdLine] = resp
	return f
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	resp, ok := f.responses[call.CommandLine()]
	block := f.Block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, nil, -1, ctx.Err()
	}

	if !ok {
		return nil, []byte("sh: 1: " + name + ": not found\n"), 127, nil
	}
	return []byte(resp.Stdout), []byte(resp.Stderr), resp.ExitCode, resp.Err
}

// Calls returns every invocation so far.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

var _ exec.Runner = (*FakeRunner)(nil)
