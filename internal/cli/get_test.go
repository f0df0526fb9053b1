package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	exectest "github.com/rileyhilliard/juju-units/internal/exec/testing"
)

func TestGet_Text(t *testing.T) {
	isolate(t)
	useRunner(t, statusRunner())

	res := run(t, "get", "mysql")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t,
		"max-connections: -1 (default)\n"+
			"binlog-format:   MIXED\n",
		res.stdout)
}

func TestGet_Environment(t *testing.T) {
	isolate(t)
	runner := exectest.NewFakeRunner().
		On("juju get --format yaml mysql -e prod", exectest.Response{Stdout: testSettings})
	useRunner(t, runner)

	res := run(t, "get", "mysql", "-e", "prod")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, []string{"get", "--format", "yaml", "mysql", "-e", "prod"}, runner.Calls()[0].Args)
}

func TestGet_JSON(t *testing.T) {
	isolate(t)
	useRunner(t, statusRunner())

	res := run(t, "get", "mysql", "-o", "json")
	require.Equal(t, 0, res.code, res.stderr)

	var env struct {
		Success bool           `json:"success"`
		Data    SettingsOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "mysql", env.Data.Service)
	require.Len(t, env.Data.Settings, 2)
	assert.Equal(t, "max-connections", env.Data.Settings[0].Name)
	assert.True(t, env.Data.Settings[0].Default)
	assert.Equal(t, "MIXED", env.Data.Settings[1].Value)
}

func TestGet_YAML(t *testing.T) {
	isolate(t)
	useRunner(t, statusRunner())

	res := run(t, "get", "mysql", "-o", "yaml")
	require.Equal(t, 0, res.code, res.stderr)

	var out SettingsOutput
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "mysql", out.Charm)
	assert.Len(t, out.Settings, 2)
}

func TestGet_Table(t *testing.T) {
	isolate(t)
	useRunner(t, statusRunner())

	res := run(t, "get", "mysql", "-o", "table")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "SETTING")
	assert.Contains(t, res.stdout, "binlog-format")
}

func TestGet_NoSettings(t *testing.T) {
	isolate(t)
	useRunner(t, exectest.NewFakeRunner().
		On("juju get --format yaml web", exectest.Response{Stdout: "service: web\nsettings: {}\n"}))

	res := run(t, "get", "web")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "web has no settings\n", res.stdout)
}

func TestGet_Errors(t *testing.T) {
	isolate(t)
	useRunner(t, statusRunner())

	res := run(t, "get")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "accepts 1 arg")

	res = run(t, "get", "ghost")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "juju get --format yaml ghost")
}
