package cli

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/juju-units/internal/config"
	"github.com/rileyhilliard/juju-units/internal/exec"
	exectest "github.com/rileyhilliard/juju-units/internal/exec/testing"
	"github.com/rileyhilliard/juju-units/internal/logger"
)

const testStatus = `environment: local
services:
  wordpress:
    units:
      wordpress/0:
        agent-state: started
        public-address: 10.0.0.9
        open-ports:
        - 80/tcp
        subordinates:
          nrpe/0:
            agent-state: started
            public-address: 10.0.0.9
  mysql:
    units:
      mysql/0:
        agent-state: error
        public-address: 10.0.0.2
        open-ports:
        - 3306/tcp
`

const testSettings = `service: mysql
charm: mysql
settings:
  max-connections:
    default: true
    type: int
    value: -1
  binlog-format:
    type: string
    value: MIXED
`

// isolate points HOME and the working directory at empty temp dirs so no
// real config file leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"JUJU_UNITS_ENVIRONMENT", "JUJU_UNITS_JUJU", "JUJU_UNITS_HOST", "JUJU_UNITS_TIMEOUT",
		"JUJU_UNITS_ALIGN", "JUJU_UNITS_QUIET", "JUJU_UNITS_SUBORDINATES", "JUJU_UNITS_OUTPUT",
		"JUJU_UNITS_NO_COLOR", "JUJU_UNITS_STRICT_HOST_KEY_CHECKING", logger.DebugEnv,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

// useRunner makes the CLI run juju through r.
func useRunner(t *testing.T, r exec.Runner) {
	t.Helper()
	old := newRunner
	newRunner = func(cfg *config.Config, log logger.Logger) (exec.Runner, func(), error) {
		return r, func() {}, nil
	}
	t.Cleanup(func() { newRunner = old })
}

func statusRunner() *exectest.FakeRunner {
	return exectest.NewFakeRunner().
		On("juju status --format yaml", exectest.Response{Stdout: testStatus}).
		On("juju status --format yaml -e prod", exectest.Response{Stdout: testStatus}).
		On("juju get --format yaml mysql", exectest.Response{Stdout: testSettings})
}

type result struct {
	stdout string
	stderr string
	code   int
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}
