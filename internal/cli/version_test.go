package cli

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setVersionForTest(t *testing.T, v, c, d string) {
	t.Helper()
	oldVersion, oldCommit, oldDate := version, commit, date
	t.Cleanup(func() { SetVersionInfo(oldVersion, oldCommit, oldDate) })
	SetVersionInfo(v, c, d)
}

func TestVersionOutput(t *testing.T) {
	isolate(t)
	setVersionForTest(t, "1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	res := run(t, "version")
	assert.Equal(t, 0, res.code)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "juju-units v1.2.3", lines[0])
	assert.Equal(t, "commit: abc1234", lines[1])
	assert.Equal(t, "built: 2025-01-08T12:00:00Z", lines[2])
	assert.Equal(t, "go: "+runtime.Version(), lines[3])
	assert.Equal(t, "os/arch: "+runtime.GOOS+"/"+runtime.GOARCH, lines[4])
}

func TestVersionShort(t *testing.T) {
	isolate(t)
	setVersionForTest(t, "1.2.3", "abc1234", "today")

	res := run(t, "version", "--short")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "1.2.3\n", res.stdout)
	assert.Equal(t, "1.2.3", GetVersion())
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dev", "dev"},
		{"", ""},
		{"1.0.0", "v1.0.0"},
		{"v1.0.0", "v1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.input))
		})
	}
}
