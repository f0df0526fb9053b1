package exec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/juju-units/internal/errors"
	sshtest "github.com/rileyhilliard/juju-units/pkg/sshutil/testing"
)

func TestBuildCommandLine(t *testing.T) {
	tests := []struct {
		name string
		cmd  string
		args []string
		want string
	}{
		{"no args", "juju", nil, "'juju'"},
		{"status", "juju", []string{"status", "--format", "yaml"}, "'juju' 'status' '--format' 'yaml'"},
		{"spaces", "/opt/my juju/juju", []string{"-e", "dev env"}, "'/opt/my juju/juju' '-e' 'dev env'"},
		{"single quote", "juju", []string{"it's"}, `'juju' 'it'\''s'`},
		{"shell metachars", "juju", []string{"$(rm -rf /)"}, "'juju' '$(rm -rf /)'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildCommandLine(tt.cmd, tt.args...))
		})
	}
}

func TestSSHRunner_Run(t *testing.T) {
	mock := sshtest.NewMockClient("jumpbox")
	mock.SetCommandResponse("'juju' 'status' '--format' 'yaml'", sshtest.CommandResponse{
		Stdout: []byte("services: {}\n"),
	})
	mock.SetCommandResponse("'juju' 'get' '--format' 'yaml' 'nope'", sshtest.CommandResponse{
		Stderr:   []byte("ERROR service \"nope\" not found\n"),
		ExitCode: 1,
	})
	r := NewSSHRunner(mock)

	stdout, _, code, err := r.Run(context.Background(), "juju", "status", "--format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "services: {}\n", string(stdout))

	_, stderr, code, err := r.Run(context.Background(), "juju", "get", "--format", "yaml", "nope")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, string(stderr), "not found")

	assert.Equal(t, []string{
		"'juju' 'status' '--format' 'yaml'",
		"'juju' 'get' '--format' 'yaml' 'nope'",
	}, mock.Executed())
}

func TestSSHRunner_Cancelled(t *testing.T) {
	mock := sshtest.NewMockClient("jumpbox")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, code, err := NewSSHRunner(mock).Run(ctx, "juju", "status")
	require.Error(t, err)
	assert.Equal(t, -1, code)
	assert.True(t, errors.IsCode(err, errors.ErrExec))
	assert.Empty(t, mock.Executed())
}

func TestSSHRunner_Timeout(t *testing.T) {
	mock := sshtest.NewMockClient("jumpbox")
	mock.Block = make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, code, err := NewSSHRunner(mock).Run(ctx, "juju", "status")
	require.Error(t, err)
	assert.Equal(t, -1, code)
	assert.Contains(t, err.Error(), "'juju' on jumpbox didn't finish in time")
	assert.True(t, mock.IsClosed())
}

func TestSSHRunner_ExplainNotFound(t *testing.T) {
	mock := sshtest.NewMockClient("jumpbox")
	mock.SetCommandResponse(`test -x "/usr/local/bin/juju"`, sshtest.CommandResponse{
		Stdout: []byte("/usr/local/bin/juju\n"),
	})

	got := NewSSHRunner(mock).ExplainNotFound("juju")
	assert.Contains(t, got, "--juju /usr/local/bin/juju")

	closed := sshtest.NewMockClient("jumpbox")
	require.NoError(t, closed.Close())
	assert.Empty(t, NewSSHRunner(closed).ExplainNotFound("juju"))
}
