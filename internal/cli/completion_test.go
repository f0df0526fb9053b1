package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "juju-units"},
		{"zsh", "#compdef juju-units"},
		{"fish", "complete -c juju-units"},
		{"powershell", "juju-units"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			res := run(t, "completion", tt.shell)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Contains(t, res.stdout, tt.want)
		})
	}
}

func TestCompletionBashGeneration(t *testing.T) {
	cmd := NewRootCmd()

	var buf bytes.Buffer
	require.NoError(t, cmd.GenBashCompletion(&buf))

	output := buf.String()
	assert.Contains(t, output, "# bash completion for juju-units")
	assert.Contains(t, output, "__juju-units_debug")
}
