package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAreDistinct(t *testing.T) {
	codes := []string{ErrConfig, ErrSSH, ErrExec, ErrExternal}
	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "duplicate code %q", code)
		seen[code] = true
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:22: connection refused")

	tests := []struct {
		name           string
		err            *Error
		wantCode       string
		wantMessage    string
		wantSuggestion string
		wantCause      error
	}{
		{
			name:           "new",
			err:            New(ErrConfig, "Invalid config format", "Check .juju-units.yaml"),
			wantCode:       ErrConfig,
			wantMessage:    "Invalid config format",
			wantSuggestion: "Check .juju-units.yaml",
		},
		{
			name:           "wrap with code",
			err:            WrapWithCode(cause, ErrSSH, "Can't reach 'jumpbox'", "Try: ssh jumpbox"),
			wantCode:       ErrSSH,
			wantMessage:    "Can't reach 'jumpbox'",
			wantSuggestion: "Try: ssh jumpbox",
			wantCause:      cause,
		},
		{
			name:           "external tool",
			err:            ExternalTool(cause, "juju status --format yaml", "Run it yourself"),
			wantCode:       ErrExternal,
			wantMessage:    "'juju status --format yaml' didn't work out",
			wantSuggestion: "Run it yourself",
			wantCause:      cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
			assert.Equal(t, tt.wantSuggestion, tt.err.Suggestion)
			assert.Equal(t, tt.wantCause, tt.err.Cause)
		})
	}
}

func TestError_Rendering(t *testing.T) {
	t.Run("all parts", func(t *testing.T) {
		err := WrapWithCode(
			errors.New("exit status 1: ERROR environment \"prod\" not found"),
			ErrExternal,
			"'juju status -e prod' didn't work out",
			"Check the environment name: juju switch -l",
		)

		assert.Equal(t,
			"✗ 'juju status -e prod' didn't work out\n"+
				"\n  exit status 1: ERROR environment \"prod\" not found\n"+
				"\n  Check the environment name: juju switch -l\n",
			err.Error())
	})

	t.Run("message only", func(t *testing.T) {
		assert.Equal(t, "✗ No service given\n", New(ErrConfig, "No service given", "").Error())
	})

	t.Run("headline first", func(t *testing.T) {
		err := WrapWithCode(errors.New("i/o timeout"), ErrSSH, "Can't reach 'jumpbox'", "ping jumpbox")
		lines := strings.Split(err.Error(), "\n")
		assert.Equal(t, "✗ Can't reach 'jumpbox'", lines[0])
	})
}

func TestError_Chain(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := WrapWithCode(cause, ErrSSH, "Session error", "")

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, errors.Is(wrapped, cause))
	assert.True(t, errors.Is(fmt.Errorf("status: %w", wrapped), cause))

	var structured *Error
	require.True(t, errors.As(fmt.Errorf("status: %w", wrapped), &structured))
	assert.Equal(t, ErrSSH, structured.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.True(t, IsCode(fmt.Errorf("load: %w", err), ErrConfig))
	assert.False(t, IsCode(err, ErrSSH))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestIsExternalToolError(t *testing.T) {
	assert.True(t, IsExternalToolError(ExternalTool(errors.New("boom"), "juju status", "")))
	assert.True(t, IsExternalToolError(fmt.Errorf("fetch: %w", New(ErrExternal, "bad output", ""))))
	assert.False(t, IsExternalToolError(New(ErrConfig, "bad config", "")))
	assert.False(t, IsExternalToolError(errors.New("plain")))
	assert.False(t, IsExternalToolError(nil))
}

func TestExitError(t *testing.T) {
	for _, code := range []int{0, 1, 127, -1} {
		err := NewExitError(code)
		assert.Equal(t, code, err.Code)
		assert.Equal(t, fmt.Sprintf("exit code %d", code), err.Error())
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{"exit error", NewExitError(1), 1, true},
		{"zero", NewExitError(0), 0, true},
		{"wrapped", fmt.Errorf("doctor: %w", NewExitError(3)), 3, true},
		{"plain error", errors.New("standard error"), 0, false},
		{"structured error", New(ErrExec, "test", ""), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
